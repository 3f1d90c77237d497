package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/input"
	"github.com/gonewx/blockbattle/pkg/types"
)

// PlayerSystem 把一帧输入应用到玩家：移动、朝向、攻击、炸弹、切换槽位
type PlayerSystem struct {
	state  *game.SimulationState
	combat *CombatSystem
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(state *game.SimulationState, combat *CombatSystem) *PlayerSystem {
	return &PlayerSystem{
		state:  state,
		combat: combat,
	}
}

// Update 处理玩家输入
//
// 移动提议 = 当前位置 + 方向 × 基础速度 × 速度倍率 × dt，经 Resolver 限制后写回；
// 眩晕期间可以移动但不能攻击；冷却中的攻击请求直接丢弃
func (s *PlayerSystem) Update(dt float64, in input.Input) {
	player, ok := s.state.Player()
	if !ok || player.IsDead {
		return
	}
	buffs, mods := s.combat.playerModifiers()
	in = in.Normalized()

	player.ShieldHeld = in.Shield
	player.DashHeld = in.Dash

	if in.Moving() {
		s.move(in, dt, mods.Speed)
	}

	if player.SwingTimer > 0 {
		player.SwingTimer -= dt
	}
	if player.AttackCooldown > 0 {
		player.AttackCooldown -= dt
	}
	if in.Attack && buffs.Stun <= 0 && player.AttackCooldown <= 0 {
		s.combat.PerformAttack()
	}

	if player.BombCooldown > 0 {
		player.BombCooldown -= dt
	}
	if in.Bomb && buffs.Stun <= 0 {
		s.combat.UseBomb()
	}

	if in.SwapSlot && s.state.Running && !s.state.Paused {
		player.ActiveSlot = player.ActiveSlot.Other()
	}
}

func (s *PlayerSystem) move(in input.Input, dt, speedMult float64) {
	em := s.state.EntityManager
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, s.state.PlayerID)
	if !ok {
		return
	}
	player, _ := s.state.Player()
	speed := s.state.Gameplay().Player.BaseSpeed * speedMult * dt

	next := pos.Position
	next.X += in.X * speed
	next.Z += in.Y * speed
	pos.Position = s.state.Resolver.ResolvePlayerMovement(pos.Position, next, s.state.Wave.Complete)

	dir := types.V(in.X, in.Y)
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, s.state.PlayerID); ok {
		facing.Yaw = components.YawToward(dir)
	}
	player.LastMoveDir = dir
}
