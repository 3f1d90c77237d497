package components

// HealthComponent 存储可被攻击实体的生命值
// 玩家、敌人、流氓机器人共用
type HealthComponent struct {
	Current float64 // 当前生命值
	Max     float64 // 最大生命值
}

// Percent 返回生命值百分比 (0~100)
func (h *HealthComponent) Percent() float64 {
	if h.Max <= 0 {
		return 0
	}
	p := h.Current / h.Max * 100
	if p < 0 {
		return 0
	}
	return p
}

// Alive 生命值是否大于 0
func (h *HealthComponent) Alive() bool {
	return h.Current > 0
}
