package components

import "github.com/gonewx/blockbattle/pkg/types"

// EnemyComponent 敌人属性
type EnemyComponent struct {
	Size   types.EnemySize
	Speed  float64
	Damage float64
	Points int
	IsBoss bool

	AttackCooldown float64
	DodgeTimer     float64
	DodgeDir       types.Vec3
}
