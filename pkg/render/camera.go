package render

import (
	"math"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/types"
)

// Camera 俯视镜头
// 世界 +X 向右，+Z 向下；Scale 为每个世界单位的像素数
type Camera struct {
	X, Z   float64
	Scale  float64
	Width  int
	Height int

	// FollowRate 跟随速度（每秒），0 表示直接对准目标
	FollowRate float64
}

// NewCamera 创建对准原点的镜头
func NewCamera(width, height int, scale float64) *Camera {
	return &Camera{Scale: scale, Width: width, Height: height, FollowRate: 6}
}

// ToScreen 世界坐标转屏幕坐标
func (c *Camera) ToScreen(p types.Vec3) (float64, float64) {
	return (p.X-c.X)*c.Scale + float64(c.Width)/2, (p.Z-c.Z)*c.Scale + float64(c.Height)/2
}

// RectToScreen 地面矩形转屏幕矩形，返回左上角和宽高
func (c *Camera) RectToScreen(b arena.Bounds) (x, y, w, h float64) {
	x, y = c.ToScreen(types.V(b.MinX, b.MinZ))
	return x, y, (b.MaxX - b.MinX) * c.Scale, (b.MaxZ - b.MinZ) * c.Scale
}

// Follow 以指数平滑向目标移动
// 玩家穿过走廊时镜头不会瞬间跳变
func (c *Camera) Follow(target types.Vec3, dt float64) {
	if c.FollowRate <= 0 {
		c.X, c.Z = target.X, target.Z
		return
	}
	t := 1 - math.Exp(-c.FollowRate*dt)
	c.X += (target.X - c.X) * t
	c.Z += (target.Z - c.Z) * t
}

// Fit 调整缩放，使边长为 size 的区域加上边距能完整放进画面
func (c *Camera) Fit(size, margin float64) {
	span := size + 2*margin
	if span <= 0 {
		return
	}
	c.Scale = math.Min(float64(c.Width), float64(c.Height)) / span
}

// EaseOutCubic 缓出曲线，t 在 [0,1] 外时截断
func EaseOutCubic(t float64) float64 {
	t = types.Clamp(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}
