package components

import "github.com/gonewx/blockbattle/pkg/config"

// PowerupComponent 场上的道具
type PowerupComponent struct {
	Def   config.PowerupDef
	Timer float64 // 剩余存在时间（秒）
	Spin  float64
}
