package entities

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// NewEnemyEntity 创建敌人实体
// stats 应当已经按波次换算（首领成长由 EnemyStatsConfig.StatsFor 完成）
//
// 参数:
//   - em: 实体管理器
//   - size: 体型
//   - stats: 最终属性
//   - pos: 出生位置
//
// 返回:
//   - ecs.EntityID: 敌人实体ID
func NewEnemyEntity(em *ecs.EntityManager, size types.EnemySize, stats config.EnemyStats, pos types.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos.Ground()})
	em.AddComponent(id, &components.FacingComponent{Yaw: faceOrigin(pos)})
	em.AddComponent(id, &components.HealthComponent{Current: stats.Health, Max: stats.Health})
	em.AddComponent(id, &components.CombatantComponent{Kind: components.KindEnemy})
	em.AddComponent(id, &components.StatusEffectComponent{})
	em.AddComponent(id, &components.EnemyComponent{
		Size:   size,
		Speed:  stats.Speed,
		Damage: stats.Damage,
		Points: stats.Points,
		IsBoss: size == types.EnemyBoss,
	})

	scale := components.NewModifierComponent()
	scale.Scale = stats.Scale
	em.AddComponent(id, scale)
	em.AddComponent(id, &components.PoseComponent{Pose: components.PoseUpright})
	return id
}

// NewRogueEntity 创建流氓机器人
func NewRogueEntity(em *ecs.EntityManager, stats config.RogueStats, pos types.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos.Ground()})
	em.AddComponent(id, &components.FacingComponent{})
	em.AddComponent(id, &components.HealthComponent{Current: stats.Health, Max: stats.Health})
	em.AddComponent(id, &components.CombatantComponent{Kind: components.KindRogue})
	em.AddComponent(id, &components.RogueComponent{
		Speed:       stats.Speed,
		Damage:      stats.Damage,
		AttackRange: stats.AttackRange,
	})
	return id
}

// faceOrigin 返回从 pos 看向原点的朝向
func faceOrigin(pos types.Vec3) float64 {
	return components.YawToward(types.Vec3{}.Sub(pos))
}
