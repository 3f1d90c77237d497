package input

// Action 可绑定的动作
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionAttack
	ActionDash
	ActionBomb
	ActionShield
	ActionSwap
	ActionInteract
	ActionPause
	ActionRetry
	ActionFullscreen
	// 军械库和结束画面
	ActionConfirm
	ActionBack
	ActionRogue
)

// Bindings 动作到按键名称的映射
// 按键名称使用 ebiten.Key.String() 的写法，终端前端按同样的名称翻译
type Bindings map[Action][]string

// DefaultBindings 默认键位
func DefaultBindings() Bindings {
	return Bindings{
		ActionUp:         {"W", "ArrowUp"},
		ActionDown:       {"S", "ArrowDown"},
		ActionLeft:       {"A", "ArrowLeft"},
		ActionRight:      {"D", "ArrowRight"},
		ActionAttack:     {"Space"},
		ActionDash:       {"ShiftLeft"},
		ActionBomb:       {"E"},
		ActionShield:     {"Q"},
		ActionSwap:       {"B"},
		ActionInteract:   {"F"},
		ActionPause:      {"P", "Escape"},
		ActionRetry:      {"R"},
		ActionFullscreen: {"F11"},
		ActionConfirm:    {"Enter"},
		ActionBack:       {"Backspace"},
		ActionRogue:      {"F8"},
	}
}

// KeyState 键盘状态查询
type KeyState interface {
	// Pressed 动作对应的任一按键当前按下
	Pressed(action Action) bool
	// JustPressed 动作对应的任一按键在本帧刚按下
	JustPressed(action Action) bool
}

// GamepadState 手柄状态
// Buttons 依次为 攻击、冲刺、炸弹、护盾
type GamepadState struct {
	Connected bool
	AxisX     float64
	AxisY     float64
	Buttons   [4]bool
}

// FromDevices 合并键盘和手柄状态
// 任一摇杆轴超过死区时手柄方向覆盖键盘方向，按钮与键盘取或
func FromDevices(keys KeyState, pad GamepadState) Input {
	var in Input
	if keys != nil {
		if keys.Pressed(ActionLeft) {
			in.X--
		}
		if keys.Pressed(ActionRight) {
			in.X++
		}
		if keys.Pressed(ActionUp) {
			in.Y--
		}
		if keys.Pressed(ActionDown) {
			in.Y++
		}
		in.Attack = keys.Pressed(ActionAttack)
		in.Dash = keys.Pressed(ActionDash)
		in.Bomb = keys.Pressed(ActionBomb)
		in.Shield = keys.Pressed(ActionShield)
		in.SwapSlot = keys.JustPressed(ActionSwap)
		in.Interact = keys.JustPressed(ActionInteract)
	}

	if pad.Connected {
		if abs(pad.AxisX) > Deadzone || abs(pad.AxisY) > Deadzone {
			in.X = pad.AxisX
			in.Y = pad.AxisY
		}
		in.Attack = in.Attack || pad.Buttons[0]
		in.Dash = in.Dash || pad.Buttons[1]
		in.Bomb = in.Bomb || pad.Buttons[2]
		in.Shield = in.Shield || pad.Buttons[3]
	}

	return in.Normalized()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
