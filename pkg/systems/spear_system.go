package systems

import (
	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// SpearSystem 投掷长矛的飞行、插入和回收
//
// 飞行中的长矛与箭矢一样可以追踪；命中敌人、流氓机器人或训练假人后插在原地，
// 出界时限制回可行走区域并插住。插住的长矛第一次会发出标记事件，
// 玩家走近后回收并返还一支弹药。穿透长矛命中敌人后继续飞行，每个敌人只命中一次
type SpearSystem struct {
	state       *game.SimulationState
	combat      *CombatSystem
	projectiles *ProjectileSystem
}

// NewSpearSystem 创建长矛系统
func NewSpearSystem(state *game.SimulationState, combat *CombatSystem, projectiles *ProjectileSystem) *SpearSystem {
	return &SpearSystem{
		state:       state,
		combat:      combat,
		projectiles: projectiles,
	}
}

// Update 推进所有长矛
func (s *SpearSystem) Update(dt float64) {
	em := s.state.EntityManager
	tuning := s.state.Gameplay().Projectile

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Kind != components.ProjectileSpear || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		if !proj.Stuck {
			s.fly(id, proj, pos, dt)
			continue
		}

		if types.GroundDistance(s.state.PlayerPosition(), pos.Position) < tuning.SpearPickupRadius {
			s.recover(id)
		}
	}
}

func (s *SpearSystem) fly(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, dt float64) {
	hitRadius := s.state.Gameplay().Projectile.HitRadius

	if proj.Homing {
		s.projectiles.steer(id, proj, pos.Position, s.state.Gameplay().Projectile.SpearHoming)
	}
	pos.Position = pos.Position.Add(proj.Velocity.Scale(dt))

	if outOfPlayfield(s.state, pos.Position) {
		pos.Position = s.clampToZone(pos.Position)
		proj.Stuck = true
	}

	if target, ok := s.projectiles.firstEnemyWithin(pos.Position, hitRadius, proj.HitIDs); ok {
		s.combat.ApplyWeaponDamage(target, proj.Config)
		if proj.HitIDs == nil {
			proj.HitIDs = make(map[ecs.EntityID]bool)
		}
		proj.HitIDs[target] = true
		if !proj.Config.Pierce {
			proj.Stuck = true
		}
	} else if s.projectiles.rogueWithin(pos.Position, hitRadius) {
		s.combat.DamageRogue(proj.Config)
		proj.Stuck = true
	} else if s.projectiles.dummyWithin(pos.Position, hitRadius) {
		s.state.Flash(s.state.DummyID)
		proj.Stuck = true
	}

	if proj.Stuck && !proj.Marked {
		proj.Marked = true
		proj.Velocity = types.Vec3{}
		s.state.Emit(event.EventSpearMarker, event.MarkerPayload{Entity: id, Position: pos.Position})
	}
}

// clampToZone 出界的长矛限制回玩家所在的区域
func (s *SpearSystem) clampToZone(p types.Vec3) types.Vec3 {
	if s.state.InLobby() {
		b := s.state.Layout.LobbyBounds()
		return clampBounds(p, b)
	}
	return s.state.Layout.ClampToArena(p)
}

func clampBounds(p types.Vec3, b arena.Bounds) types.Vec3 {
	p.X = types.Clamp(p.X, b.MinX, b.MaxX)
	p.Z = types.Clamp(p.Z, b.MinZ, b.MaxZ)
	return p
}

// recover 回收长矛，弹药不超过上限
func (s *SpearSystem) recover(id ecs.EntityID) {
	s.state.EntityManager.DestroyEntity(id)
	player, ok := s.state.Player()
	if !ok {
		return
	}
	max := s.state.Gameplay().Player.SpearAmmo
	if player.SpearAmmo < max {
		player.SpearAmmo++
	}
}
