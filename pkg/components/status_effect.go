package components

// StatusEffectComponent 敌人身上的状态计时（秒）
type StatusEffectComponent struct {
	Freeze float64 // 冰冻：不移动、不攻击、不燃烧
	Slow   float64 // 减速：移动速度乘以减速系数
	Burn   float64 // 燃烧：持续掉血
}
