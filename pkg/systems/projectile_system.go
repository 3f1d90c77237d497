package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// ProjectileSystem 箭矢飞行和命中
//
// 判定顺序：出界 → 第一个存活敌人 → 训练假人（玩家在大厅时）→ 流氓机器人。
// 任一命中后箭矢立即移除
type ProjectileSystem struct {
	state  *game.SimulationState
	combat *CombatSystem
}

// NewProjectileSystem 创建箭矢系统
func NewProjectileSystem(state *game.SimulationState, combat *CombatSystem) *ProjectileSystem {
	return &ProjectileSystem{
		state:  state,
		combat: combat,
	}
}

// Update 推进所有箭矢
func (s *ProjectileSystem) Update(dt float64) {
	em := s.state.EntityManager
	hitRadius := s.state.Gameplay().Projectile.HitRadius

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Kind != components.ProjectileArrow || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		if proj.Homing {
			s.steer(id, proj, pos.Position, s.state.Gameplay().Projectile.ArrowHoming)
		}
		pos.Position = pos.Position.Add(proj.Velocity.Scale(dt))

		if outOfPlayfield(s.state, pos.Position) {
			em.DestroyEntity(id)
			continue
		}

		if target, ok := s.firstEnemyWithin(pos.Position, hitRadius, nil); ok {
			s.combat.ApplyWeaponDamage(target, proj.Config)
			em.DestroyEntity(id)
			continue
		}
		if s.dummyWithin(pos.Position, hitRadius) {
			s.state.Flash(s.state.DummyID)
			em.DestroyEntity(id)
			continue
		}
		if s.rogueWithin(pos.Position, hitRadius) {
			s.combat.DamageRogue(proj.Config)
			em.DestroyEntity(id)
		}
	}
}

// steer 把速度向最近存活敌人的方向插值
func (s *ProjectileSystem) steer(id ecs.EntityID, proj *components.ProjectileComponent, from types.Vec3, blend float64) {
	target, _, ok := s.state.NearestLiveEnemy(from)
	if !ok {
		return
	}
	targetPos, _ := s.state.PositionOf(target)
	speed := proj.Speed
	if speed <= 0 {
		speed = proj.Velocity.Length()
	}
	desired := targetPos.Sub(from).Ground().Normalize().Scale(speed)
	proj.Velocity = proj.Velocity.Lerp(desired, blend)
	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.state.EntityManager, id); ok {
		facing.Yaw = components.YawToward(proj.Velocity)
	}
}

// firstEnemyWithin 返回第一个在 radius 内且不在 skip 中的存活敌人
func (s *ProjectileSystem) firstEnemyWithin(p types.Vec3, radius float64, skip map[ecs.EntityID]bool) (ecs.EntityID, bool) {
	for _, id := range s.state.LiveEnemies() {
		if skip[id] {
			continue
		}
		pos, _ := s.state.PositionOf(id)
		if types.GroundDistance(pos, p) < radius {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// dummyWithin 玩家在大厅时训练假人是否在 radius 内
func (s *ProjectileSystem) dummyWithin(p types.Vec3, radius float64) bool {
	if s.state.DummyID == ecs.InvalidEntity || !s.state.InLobby() {
		return false
	}
	pos, ok := s.state.PositionOf(s.state.DummyID)
	return ok && types.GroundDistance(pos, p) < radius
}

// rogueWithin 存活的流氓机器人是否在 radius 内
func (s *ProjectileSystem) rogueWithin(p types.Vec3, radius float64) bool {
	if !s.state.RogueAlive() {
		return false
	}
	pos, ok := s.state.PositionOf(s.state.RogueID)
	return ok && types.GroundDistance(pos, p) < radius
}

// outOfPlayfield 弹体是否离开了可飞行区域
// 竞技场边界之外即为出界；波次完成后大厅内也允许飞行，用于攻击训练假人
func outOfPlayfield(state *game.SimulationState, p types.Vec3) bool {
	if !state.Layout.OutOfArena(p) {
		return false
	}
	return !(state.Wave.Complete && state.Layout.InLobby(p))
}
