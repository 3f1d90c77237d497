// Package utils 提供与 ebiten 相关的通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/blockbattle/pkg/input"
)

// EbitenKeys 基于 ebiten 键盘状态实现 input.KeyState
type EbitenKeys struct {
	keys map[input.Action][]ebiten.Key
}

// NewEbitenKeys 按绑定表创建键盘查询器
// 无法识别的按键名称会被忽略
func NewEbitenKeys(bindings input.Bindings) *EbitenKeys {
	byName := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		byName[k.String()] = k
	}

	keys := make(map[input.Action][]ebiten.Key, len(bindings))
	for action, names := range bindings {
		for _, name := range names {
			if k, ok := byName[name]; ok {
				keys[action] = append(keys[action], k)
			}
		}
	}
	return &EbitenKeys{keys: keys}
}

// Pressed 动作对应的任一按键当前按下
func (e *EbitenKeys) Pressed(action input.Action) bool {
	for _, k := range e.keys[action] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// JustPressed 动作对应的任一按键在本帧刚按下
func (e *EbitenKeys) JustPressed(action input.Action) bool {
	for _, k := range e.keys[action] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// PollGamepad 读取第一个已连接手柄的轴 0/1 和按钮 0..3
func PollGamepad() input.GamepadState {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return input.GamepadState{}
	}
	id := ids[0]
	pad := input.GamepadState{
		Connected: true,
		AxisX:     ebiten.GamepadAxisValue(id, 0),
		AxisY:     ebiten.GamepadAxisValue(id, 1),
	}
	for i := range pad.Buttons {
		pad.Buttons[i] = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton(i))
	}
	return pad
}

// TouchStick 触屏虚拟摇杆
// 按下点作为摇杆中心，拖动距离按 radius 归一化成方向
type TouchStick struct {
	radius float64

	active  bool
	id      ebiten.TouchID
	centerX int
	centerY int
	x, y    float64
}

// NewTouchStick 创建虚拟摇杆，radius 为满偏移对应的屏幕像素
func NewTouchStick(radius float64) *TouchStick {
	if radius <= 0 {
		radius = 60
	}
	return &TouchStick{radius: radius, id: -1}
}

// Update 每帧调用一次，跟踪第一个触点
func (s *TouchStick) Update() {
	if !s.active {
		just := inpututil.AppendJustPressedTouchIDs(nil)
		if len(just) == 0 {
			return
		}
		s.active = true
		s.id = just[0]
		s.centerX, s.centerY = ebiten.TouchPosition(s.id)
		s.x, s.y = 0, 0
		return
	}

	if inpututil.IsTouchJustReleased(s.id) {
		s.Reset()
		return
	}
	cx, cy := ebiten.TouchPosition(s.id)
	s.x, s.y = StickVector(cx-s.centerX, cy-s.centerY, s.radius)
}

// Reset 松开摇杆
func (s *TouchStick) Reset() {
	s.active = false
	s.id = -1
	s.x, s.y = 0, 0
}

// Active 摇杆是否被按住
func (s *TouchStick) Active() bool {
	return s.active
}

// Vector 当前摇杆方向
func (s *TouchStick) Vector() (float64, float64) {
	return s.x, s.y
}

// StickVector 把屏幕拖动距离换算成长度不超过 1 的方向
// 小于死区的拖动视为没有输入
func StickVector(dx, dy int, radius float64) (float64, float64) {
	x := float64(dx) / radius
	y := float64(dy) / radius
	if math.Hypot(x, y) <= input.Deadzone {
		return 0, 0
	}
	return input.Normalize(x, y)
}

// Poller 每帧合并键盘、手柄和触屏输入
type Poller struct {
	Keys  *EbitenKeys
	Stick *TouchStick // 未启用触屏时为 nil
}

// NewPoller 使用默认键位创建输入轮询器，TouchControls 为真时附带触屏摇杆
func NewPoller() *Poller {
	p := &Poller{Keys: NewEbitenKeys(input.DefaultBindings())}
	if TouchControls() {
		p.Stick = NewTouchStick(60)
	}
	return p
}

// Poll 读取本帧输入
// 触屏摇杆按住时覆盖移动方向
func (p *Poller) Poll() input.Input {
	in := input.FromDevices(p.Keys, PollGamepad())
	if p.Stick == nil {
		return in
	}
	p.Stick.Update()
	if p.Stick.Active() {
		in.X, in.Y = p.Stick.Vector()
	}
	return in
}
