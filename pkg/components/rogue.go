package components

// RogueComponent 流氓机器人属性
type RogueComponent struct {
	Speed          float64
	Damage         float64
	AttackRange    float64
	AttackCooldown float64
	Spin           float64 // 自转角度，仅用于渲染
}
