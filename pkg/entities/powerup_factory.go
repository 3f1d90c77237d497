package entities

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// PowerupHeight 道具悬浮高度
const PowerupHeight = 0.6

// NewPowerupEntity 在 pos 生成道具，lifetime 秒后消失
func NewPowerupEntity(em *ecs.EntityManager, def config.PowerupDef, pos types.Vec3, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	pos.Y = PowerupHeight
	em.AddComponent(id, &components.PositionComponent{Position: pos})
	em.AddComponent(id, &components.PowerupComponent{Def: def, Timer: lifetime})
	return id
}
