package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
)

// LifetimeSystem 倒地窗口计时
// 被击败的敌人带有 LifetimeComponent，到期后标记销毁，
// 由帧末的 RemoveMarkedEntities 统一移除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进计时，返回本帧到期的实体数
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		lifetime.Elapsed += deltaTime
		if lifetime.Elapsed >= lifetime.Window {
			lifetime.Expired = true
		}
		if lifetime.Expired {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}
	return expired
}
