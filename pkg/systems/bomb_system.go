package systems

import (
	"log"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// BombSystem 炸弹引信和爆炸
type BombSystem struct {
	state  *game.SimulationState
	combat *CombatSystem
}

// NewBombSystem 创建炸弹系统
func NewBombSystem(state *game.SimulationState, combat *CombatSystem) *BombSystem {
	return &BombSystem{
		state:  state,
		combat: combat,
	}
}

// Update 推进引信，到时的炸弹爆炸并返还一枚炸弹弹药
func (s *BombSystem) Update(dt float64) {
	em := s.state.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.BombComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		bomb, _ := ecs.GetComponent[*components.BombComponent](em, id)
		bomb.Fuse -= dt
		if bomb.Fuse > 0 {
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		s.Explode(pos.Position, bomb)
		em.DestroyEntity(id)

		if player, ok := s.state.Player(); ok {
			if cap := s.state.Data.Weapons.BombCap(); player.BombAmmo < cap {
				player.BombAmmo++
			}
		}
	}
}

// Explode 在 center 引爆炸弹
//
// 先按配置的半径和伤害溅射，再对半径内仍存活的敌人施加玩家的元素增益；
// 龙卷风增益下半径内的敌人直接被击败。流氓机器人受一次武器伤害，
// 玩家在大厅时训练假人闪烁
func (s *BombSystem) Explode(center types.Vec3, bomb *components.BombComponent) {
	cfg := bomb.Config
	s.combat.Splash(center, cfg.Radius, cfg.Damage)

	buffs, _ := s.combat.playerModifiers()
	tuning := s.state.Gameplay().Combat
	em := s.state.EntityManager
	for _, id := range s.state.LiveEnemies() {
		pos, _ := s.state.PositionOf(id)
		if types.GroundDistance(pos, center) > cfg.Radius {
			continue
		}
		if buffs.Tornado > 0 {
			s.combat.hitEnemy(id, 0, true)
			continue
		}
		status, ok := ecs.GetComponent[*components.StatusEffectComponent](em, id)
		if !ok {
			continue
		}
		if buffs.Frost > 0 {
			status.Freeze = tuning.FreezeSeconds
		}
		if buffs.Flame > 0 {
			status.Burn = tuning.BurnSeconds
		}
		if buffs.Oil > 0 {
			status.Slow = tuning.SlowSeconds
		}
	}

	if s.state.RogueAlive() {
		if pos, ok := s.state.PositionOf(s.state.RogueID); ok && types.GroundDistance(pos, center) <= cfg.Radius {
			s.combat.DamageRogue(cfg)
		}
	}
	if s.state.DummyID != ecs.InvalidEntity && s.state.InLobby() {
		if pos, ok := s.state.PositionOf(s.state.DummyID); ok && types.GroundDistance(pos, center) <= cfg.Radius {
			s.state.Flash(s.state.DummyID)
		}
	}

	s.state.Cue(event.CueExplosion)
	log.Printf("[BombSystem] Explosion at (%.1f, %.1f) radius=%.1f damage=%.0f", center.X, center.Z, cfg.Radius, cfg.Damage)
}
