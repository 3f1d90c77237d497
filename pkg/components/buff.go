package components

// SizeMode 体型道具的档位
type SizeMode int

const (
	SizeNormal SizeMode = iota
	SizeGrow
	SizeShrink
)

// String 返回档位名称
func (m SizeMode) String() string {
	switch m {
	case SizeGrow:
		return "grow"
	case SizeShrink:
		return "shrink"
	default:
		return "normal"
	}
}

// BuffComponent 玩家身上的道具计时（秒）
type BuffComponent struct {
	Homing  float64
	Tornado float64
	Stun    float64
	Frost   float64
	Flame   float64
	Oil     float64
	Size    float64

	SizeMode SizeMode

	// HUD 上显示的最近一次拾取
	Label     string
	Remaining float64
}

// Clear 清空全部计时和 HUD 标签
func (b *BuffComponent) Clear() {
	*b = BuffComponent{}
}

// Any 是否有任一增益在生效
func (b *BuffComponent) Any() bool {
	return b.Homing > 0 || b.Tornado > 0 || b.Stun > 0 || b.Frost > 0 ||
		b.Flame > 0 || b.Oil > 0 || b.Size > 0
}
