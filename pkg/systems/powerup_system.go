package systems

import (
	"log"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

const powerupSpinRate = 2

// PowerupSystem 场上道具的存在计时、拾取和定时刷新
type PowerupSystem struct {
	state   *game.SimulationState
	spawner *Spawner
	buffs   *BuffSystem
}

// NewPowerupSystem 创建道具系统
func NewPowerupSystem(state *game.SimulationState, spawner *Spawner, buffs *BuffSystem) *PowerupSystem {
	return &PowerupSystem{
		state:   state,
		spawner: spawner,
		buffs:   buffs,
	}
}

// powerupEntities 返回场上全部道具
func powerupEntities(state *game.SimulationState) []ecs.EntityID {
	return ecs.GetEntitiesWith2[*components.PowerupComponent, *components.PositionComponent](state.EntityManager)
}

// Update 推进道具计时并处理拾取
// 波次完成后道具冻结在原地，既不消失也不能拾取
func (s *PowerupSystem) Update(dt float64) {
	if s.state.Wave.Complete {
		return
	}
	em := s.state.EntityManager
	tuning := s.state.Gameplay().Powerup
	playerPos := s.state.PlayerPosition()

	for _, id := range powerupEntities(s.state) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		powerup, _ := ecs.GetComponent[*components.PowerupComponent](em, id)
		powerup.Timer -= dt
		powerup.Spin += powerupSpinRate * dt
		if powerup.Timer <= 0 {
			em.DestroyEntity(id)
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if types.GroundDistance(pos.Position, playerPos) >= tuning.PickupRadius {
			continue
		}
		s.buffs.Apply(powerup.Def)
		em.DestroyEntity(id)
		s.state.PowerupSpawnTimer = tuning.PickupRespawnDelay
		log.Printf("[PowerupSystem] Picked up %s", powerup.Def.ID)
	}
}

// UpdateCadence 定时刷新道具
// 大厅内和波次完成后暂停计时
func (s *PowerupSystem) UpdateCadence(dt float64) {
	if s.state.Wave.Complete || s.state.InLobby() {
		return
	}
	s.state.PowerupSpawnTimer -= dt
	if s.state.PowerupSpawnTimer > 0 {
		return
	}
	s.spawner.SpawnPowerup()
	s.state.PowerupSpawnTimer = s.state.Gameplay().Powerup.SpawnInterval
}
