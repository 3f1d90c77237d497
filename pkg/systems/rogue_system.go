package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// RogueSystem 流氓机器人行为
// 追最近的存活敌人，没有敌人时追玩家；进入攻击半径后同时攻击半径内的所有敌人和玩家，
// 至少命中一个目标才进入冷却
type RogueSystem struct {
	state  *game.SimulationState
	combat *CombatSystem
}

// NewRogueSystem 创建流氓机器人系统
func NewRogueSystem(state *game.SimulationState, combat *CombatSystem) *RogueSystem {
	return &RogueSystem{
		state:  state,
		combat: combat,
	}
}

// Update 更新流氓机器人
func (s *RogueSystem) Update(dt float64) {
	if s.state.Wave.Complete || !s.state.Running || !s.state.RogueAlive() {
		return
	}
	em := s.state.EntityManager
	id := s.state.RogueID
	rogue, ok := ecs.GetComponent[*components.RogueComponent](em, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	stats := s.state.Data.Enemies.Rogue

	rogue.Spin += stats.SpinRate * dt
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
		facing.Yaw = rogue.Spin
	}

	target := s.state.PlayerPosition()
	if enemyID, _, found := s.state.NearestLiveEnemy(pos.Position); found {
		target, _ = s.state.PositionOf(enemyID)
	}

	delta := target.Sub(pos.Position).Ground()
	if delta.Length() > rogue.AttackRange {
		pos.Position = s.state.Layout.ClampToArena(pos.Position.Add(delta.Normalize().Scale(rogue.Speed * dt)))
	} else if rogue.AttackCooldown <= 0 {
		if s.strike(pos.Position, rogue) {
			rogue.AttackCooldown = stats.AttackCooldown
		}
	}

	if rogue.AttackCooldown > 0 {
		rogue.AttackCooldown -= dt
	}
}

// strike 攻击半径内的所有存活敌人和玩家，返回是否命中
func (s *RogueSystem) strike(center types.Vec3, rogue *components.RogueComponent) bool {
	hit := false
	for _, id := range s.state.LiveEnemies() {
		pos, _ := s.state.PositionOf(id)
		if types.GroundDistance(pos, center) > rogue.AttackRange {
			continue
		}
		s.combat.hitEnemyRaw(id, rogue.Damage)
		hit = true
	}
	if types.GroundDistance(s.state.PlayerPosition(), center) <= rogue.AttackRange {
		s.combat.DamagePlayer(rogue.Damage)
		hit = true
	}
	return hit
}
