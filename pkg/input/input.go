// Package input 定义模拟核心每帧消费的输入结构
//
// 设备轮询在外部完成（ebiten 窗口见 pkg/utils，终端见 cmd/arena_tui），
// 这里只负责把按键/手柄状态归一化成移动向量和动作标志。
package input

import "math"

// Deadzone 手柄摇杆死区，超过后手柄覆盖键盘方向
const Deadzone = 0.1

// Input 一帧的归一化输入
type Input struct {
	X, Y float64 // 移动方向，长度 <= 1；Y 对应世界 +Z（向南）

	Attack bool
	Dash   bool
	Bomb   bool
	Shield bool

	// 边沿触发的动作，只在按下的那一帧为 true
	SwapSlot bool
	Interact bool
}

// Moving 是否有移动输入
func (in Input) Moving() bool {
	return in.X != 0 || in.Y != 0
}

// Normalize 把移动向量长度限制在 1 以内
// 对角线输入缩放到单位长度，长度不足 1 的模拟量保持不变。
// 含无穷分量时取极限方向：有限分量相对无穷可忽略，归零，例如 (+Inf, 0.5) 得到 (1, 0)；
// 两个分量都是无穷时得到对角线单位向量。NaN 视为没有输入。
func Normalize(x, y float64) (float64, float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		x, y = infSign(x), infSign(y)
	}
	l := math.Hypot(x, y)
	if l <= 1 {
		return x, y
	}
	return x / l, y / l
}

// infSign 无穷大取 ±1，有限值取 0（相对无穷分量的极限）
func infSign(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return 1
	case math.IsInf(v, -1):
		return -1
	default:
		return 0
	}
}

// Normalized 返回移动向量归一化后的输入
func (in Input) Normalized() Input {
	in.X, in.Y = Normalize(in.X, in.Y)
	return in
}
