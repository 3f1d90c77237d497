package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// EnemyAISystem 敌人行为
//
// 每个存活且未冻结的敌人每帧：
//  1. 选择目标：流氓机器人存活且严格更近时追它，否则追玩家
//  2. 有弹体在附近时闪避 0.35 秒（垂直方向随机一侧，混入少量前进分量）
//  3. 距离大于交战距离时移动，否则冷却结束后攻击目标
//  4. 燃烧持续掉血，可能在本帧被击败
//
// 之后对存活敌人两两做分离，距离过近的成对推开并限制回竞技场
type EnemyAISystem struct {
	state  *game.SimulationState
	combat *CombatSystem
}

// NewEnemyAISystem 创建敌人行为系统
func NewEnemyAISystem(state *game.SimulationState, combat *CombatSystem) *EnemyAISystem {
	return &EnemyAISystem{
		state:  state,
		combat: combat,
	}
}

// Update 更新所有敌人，波次完成或游戏未运行时不做任何事
func (s *EnemyAISystem) Update(dt float64) {
	if s.state.Wave.Complete || !s.state.Running {
		return
	}

	hazards := s.flyingHazards()
	for _, id := range s.state.Enemies() {
		if !s.state.IsLiveEnemy(id) {
			continue
		}
		s.updateEnemy(id, dt, hazards)
		if !s.state.Running {
			// 玩家在本帧死亡
			return
		}
	}

	s.separate()
}

func (s *EnemyAISystem) updateEnemy(id ecs.EntityID, dt float64, hazards []types.Vec3) {
	em := s.state.EntityManager
	tuning := s.state.Gameplay().Enemy

	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	status, ok := ecs.GetComponent[*components.StatusEffectComponent](em, id)
	if !ok {
		status = &components.StatusEffectComponent{}
	}

	if status.Freeze > 0 {
		status.Freeze -= dt
		return
	}

	target, targetRogue := s.target(pos.Position)
	delta := target.Sub(pos.Position).Ground()
	distance := delta.Length()
	dir := delta.Normalize()
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
		facing.Yaw = components.YawToward(dir)
	}

	slow := 1.0
	if status.Slow > 0 {
		slow = tuning.SlowFactor
		status.Slow -= dt
	}

	moveDir := dir
	if enemy.DodgeTimer > 0 {
		enemy.DodgeTimer -= dt
		moveDir = enemy.DodgeDir
	} else {
		for _, h := range hazards {
			if types.GroundDistance(h, pos.Position) < tuning.DodgeRadius {
				side := 1.0
				if s.state.Rand.Float64() < 0.5 {
					side = -1
				}
				perp := types.V(-dir.Z, dir.X).Scale(side)
				enemy.DodgeDir = perp.Add(dir.Scale(tuning.DodgeForwardBias)).Normalize()
				enemy.DodgeTimer = tuning.DodgeDuration
				moveDir = enemy.DodgeDir
				break
			}
		}
	}

	if distance > tuning.EngageRange {
		pos.Position = pos.Position.Add(moveDir.Scale(enemy.Speed * slow * dt))
	} else if enemy.AttackCooldown <= 0 {
		s.combat.DamageTarget(enemy.Damage, targetRogue)
		enemy.AttackCooldown = tuning.AttackCooldown
	}

	if enemy.AttackCooldown > 0 {
		enemy.AttackCooldown -= dt
	}

	if status.Burn > 0 {
		status.Burn -= dt
		if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
			health.Current -= tuning.BurnDPS * dt
			if health.Current <= 0 {
				s.combat.DefeatEnemy(id)
			}
		}
	}
}

// target 返回敌人的目标位置，以及目标是否为流氓机器人
func (s *EnemyAISystem) target(from types.Vec3) (types.Vec3, bool) {
	playerPos := s.state.PlayerPosition()
	if s.state.RogueAlive() {
		roguePos, _ := s.state.PositionOf(s.state.RogueID)
		if types.GroundDistance(from, roguePos) < types.GroundDistance(from, playerPos) {
			return roguePos, true
		}
	}
	return playerPos, false
}

// flyingHazards 返回所有飞行中的箭矢和长矛位置
func (s *EnemyAISystem) flyingHazards() []types.Vec3 {
	em := s.state.EntityManager
	ids := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em)
	out := make([]types.Vec3, 0, len(ids))
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Stuck || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		out = append(out, pos.Position)
	}
	return out
}

// separate 把距离小于最小间距的存活敌人成对推开
// 两两比较，敌人数量在几十个以内时开销可以接受
func (s *EnemyAISystem) separate() {
	em := s.state.EntityManager
	minDist := s.state.Gameplay().Enemy.SeparationDistance
	live := s.state.LiveEnemies()

	for i := 0; i < len(live); i++ {
		a, _ := ecs.GetComponent[*components.PositionComponent](em, live[i])
		for j := i + 1; j < len(live); j++ {
			b, _ := ecs.GetComponent[*components.PositionComponent](em, live[j])
			delta := a.Position.Sub(b.Position).Ground()
			dist := delta.Length()
			if dist >= minDist {
				continue
			}
			var push types.Vec3
			if dist == 0 {
				// 同一点生成的敌人沿 X 轴拆开
				push = types.V(minDist*0.5, 0)
			} else {
				push = delta.Normalize().Scale((minDist - dist) * 0.5)
			}
			a.Position = s.state.Layout.ClampToArena(a.Position.Add(push))
			b.Position = s.state.Layout.ClampToArena(b.Position.Sub(push))
		}
	}
}
