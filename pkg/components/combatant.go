package components

// CombatantKind 战斗单位种类
type CombatantKind int

const (
	// KindPlayer 玩家
	KindPlayer CombatantKind = iota
	// KindEnemy 敌人（含首领）
	KindEnemy
	// KindRogue 对所有人敌对的流氓机器人
	KindRogue
	// KindDummy 大厅训练假人，只响应闪烁
	KindDummy
)

// String 返回种类名称
func (k CombatantKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindRogue:
		return "rogue"
	case KindDummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// CombatantComponent 战斗单位标签
// Defeated 保证击败结算（积分、计数、首领判定）只发生一次
type CombatantComponent struct {
	Kind     CombatantKind
	Defeated bool
}
