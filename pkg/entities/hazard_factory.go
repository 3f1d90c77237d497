package entities

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// NewArrowEntity 创建箭矢
//
// 参数:
//   - em: 实体管理器
//   - pos: 发射位置
//   - dir: 飞行方向（单位向量）
//   - speed: 飞行速度
//   - cfg: 发射时的武器属性拷贝
//   - homing: 是否追踪
//   - bombTip: 是否为炸弹武器射出的弹头箭
func NewArrowEntity(em *ecs.EntityManager, pos, dir types.Vec3, speed float64, cfg config.WeaponLevel, homing, bombTip bool) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos})
	em.AddComponent(id, &components.FacingComponent{Yaw: components.YawToward(dir)})
	em.AddComponent(id, &components.ProjectileComponent{
		Kind:     components.ProjectileArrow,
		Velocity: dir.Scale(speed),
		Speed:    speed,
		Config:   cfg,
		Homing:   homing,
		BombTip:  bombTip,
	})
	return id
}

// NewSpearEntity 创建投掷出的长矛
func NewSpearEntity(em *ecs.EntityManager, pos, dir types.Vec3, speed float64, cfg config.WeaponLevel, homing bool) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos})
	em.AddComponent(id, &components.FacingComponent{Yaw: components.YawToward(dir)})
	em.AddComponent(id, &components.ProjectileComponent{
		Kind:     components.ProjectileSpear,
		Velocity: dir.Scale(speed),
		Speed:    speed,
		Config:   cfg,
		Homing:   homing,
		HitIDs:   make(map[ecs.EntityID]bool),
	})
	return id
}

// NewBombEntity 在 pos 放置炸弹
func NewBombEntity(em *ecs.EntityManager, pos types.Vec3, fuse float64, cfg config.WeaponLevel) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos.Ground()})
	em.AddComponent(id, &components.BombComponent{Fuse: fuse, Config: cfg})
	return id
}
