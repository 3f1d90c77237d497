package components

import "github.com/gonewx/blockbattle/pkg/config"

// BombComponent 已放置的炸弹
type BombComponent struct {
	Fuse   float64 // 剩余引信时间（秒）
	Config config.WeaponLevel
}
