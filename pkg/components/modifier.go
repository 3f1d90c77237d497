package components

// ModifierComponent 属性倍率
// 体型道具修改这些倍率，到期时恢复为 1
type ModifierComponent struct {
	Damage  float64
	Defense float64
	Speed   float64
	Scale   float64
}

// NewModifierComponent 返回基准倍率
func NewModifierComponent() *ModifierComponent {
	m := &ModifierComponent{}
	m.Reset()
	return m
}

// Reset 恢复基准倍率
func (m *ModifierComponent) Reset() {
	m.Damage = 1
	m.Defense = 1
	m.Speed = 1
	m.Scale = 1
}
