package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
)

// FlashEffectSystem 受击闪白的强度衰减
// 组件的添加和移除由 SimulationState.Flash 负责，这里只让强度随时间线性减弱
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪白系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有闪白强度
func (s *FlashEffectSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		flash, _ := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id)
		flash.Elapsed += dt
		if flash.Duration <= 0 || flash.Elapsed >= flash.Duration {
			flash.Intensity = 0
			continue
		}
		flash.Intensity = 1 - flash.Elapsed/flash.Duration
	}
}
