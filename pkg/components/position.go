package components

import (
	"math"

	"github.com/gonewx/blockbattle/pkg/types"
)

// PositionComponent 世界坐标
type PositionComponent struct {
	Position types.Vec3
}

// FacingComponent 绕 Y 轴的朝向（弧度）
type FacingComponent struct {
	Yaw float64
}

// YawToward 返回朝向 dir 的偏航角，与 atan2(x, z) 一致
func YawToward(dir types.Vec3) float64 {
	if dir.X == 0 && dir.Z == 0 {
		return 0
	}
	return math.Atan2(dir.X, dir.Z)
}
