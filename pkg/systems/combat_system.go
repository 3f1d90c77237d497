package systems

import (
	"log"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// CombatSystem 伤害结算
//
// 职责：
//   - 玩家武器对敌人、流氓机器人、训练假人的伤害和附加效果
//   - 敌人和流氓机器人对玩家的伤害（格挡、护盾、防御倍率）
//   - 击败结算（只结算一次）和玩家死亡流程
//   - 玩家攻击分发（见 attack.go）
//
// 所有结算都先过滤"存活且未被击败"的目标，失效的实体引用直接跳过
type CombatSystem struct {
	state   *game.SimulationState
	spawner *Spawner
	buffs   *BuffSystem
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(state *game.SimulationState, spawner *Spawner, buffs *BuffSystem) *CombatSystem {
	return &CombatSystem{
		state:   state,
		spawner: spawner,
		buffs:   buffs,
	}
}

// ActiveWeapon 返回玩家当前槽位的武器定义和当前等级属性
func (c *CombatSystem) ActiveWeapon() (*config.WeaponDef, config.WeaponLevel) {
	player, ok := c.state.Player()
	if !ok {
		def := c.state.Data.Weapons.Get(config.FallbackWeaponID)
		return def, def.Level(1)
	}
	return c.Weapon(player.ActiveWeaponID())
}

// Weapon 返回指定武器的定义和玩家持有的等级属性
func (c *CombatSystem) Weapon(id string) (*config.WeaponDef, config.WeaponLevel) {
	def := c.state.Data.Weapons.Get(id)
	level := 1
	if player, ok := c.state.Player(); ok {
		level = player.LevelOf(def.ID)
	}
	return def, def.Level(level)
}

// playerModifiers 返回玩家的增益和属性倍率
func (c *CombatSystem) playerModifiers() (*components.BuffComponent, *components.ModifierComponent) {
	em := c.state.EntityManager
	buffs, ok := ecs.GetComponent[*components.BuffComponent](em, c.state.PlayerID)
	if !ok {
		buffs = &components.BuffComponent{}
	}
	mods, ok := ecs.GetComponent[*components.ModifierComponent](em, c.state.PlayerID)
	if !ok {
		mods = components.NewModifierComponent()
	}
	return buffs, mods
}

// ApplyWeaponDamage 用武器属性 cfg 攻击 target
// 按目标种类分发：敌人完整结算，流氓机器人只扣血，训练假人只闪烁
func (c *CombatSystem) ApplyWeaponDamage(target ecs.EntityID, cfg config.WeaponLevel) {
	combatant, ok := ecs.GetComponent[*components.CombatantComponent](c.state.EntityManager, target)
	if !ok {
		return
	}
	switch combatant.Kind {
	case components.KindEnemy:
		c.damageEnemy(target, cfg)
	case components.KindRogue:
		c.DamageRogue(cfg)
	case components.KindDummy:
		c.state.Flash(target)
	}
}

// damageEnemy 武器命中敌人
//
// 结算顺序：
//  1. 伤害 = cfg.Damage × 伤害倍率，龙卷风增益下直接归零
//  2. 玩家元素增益：冰冻、燃烧、油污减速
//  3. 武器特效：燃烧、缴械减速、连锁电击、溅射
//  4. 闪白和击败判定
func (c *CombatSystem) damageEnemy(target ecs.EntityID, cfg config.WeaponLevel) {
	if !c.state.IsLiveEnemy(target) {
		return
	}
	em := c.state.EntityManager
	tuning := c.state.Gameplay().Combat
	buffs, mods := c.playerModifiers()

	scaled := cfg.Damage * mods.Damage
	health, _ := ecs.GetComponent[*components.HealthComponent](em, target)
	if buffs.Tornado > 0 {
		health.Current = 0
	} else {
		health.Current -= scaled
	}

	if status, ok := ecs.GetComponent[*components.StatusEffectComponent](em, target); ok {
		if buffs.Frost > 0 {
			status.Freeze = tuning.FreezeSeconds
		}
		if buffs.Flame > 0 {
			status.Burn = tuning.BurnSeconds
		}
		if buffs.Oil > 0 {
			status.Slow = tuning.SlowSeconds
		}
		if cfg.Burn > 0 {
			status.Burn = cfg.Burn
		}
		if cfg.Disarm > 0 {
			status.Slow = cfg.Disarm
		}
	}

	center, _ := c.state.PositionOf(target)
	if cfg.Shock > 0 {
		c.chainShock(target, center, cfg.Shock)
	}
	if cfg.Splash > 0 {
		c.Splash(center, cfg.Splash, scaled*tuning.SplashFactor)
	}

	c.state.Flash(target)
	c.state.Cue(event.CueHit)
	c.checkEnemyDefeat(target)
}

// chainShock 对 primary 周围 radius 内的其他存活敌人造成固定电击伤害
func (c *CombatSystem) chainShock(primary ecs.EntityID, center types.Vec3, radius float64) {
	damage := c.state.Gameplay().Combat.ShockDamage
	tornado := c.tornadoActive()
	for _, id := range c.state.LiveEnemies() {
		if id == primary {
			continue
		}
		pos, _ := c.state.PositionOf(id)
		if types.GroundDistance(pos, center) > radius {
			continue
		}
		c.hitEnemy(id, damage, tornado)
	}
}

// Splash 对 center 周围 radius 内所有存活敌人造成 damage 点伤害
// 龙卷风增益下范围内的敌人直接被击败
func (c *CombatSystem) Splash(center types.Vec3, radius, damage float64) {
	tornado := c.tornadoActive()
	for _, id := range c.state.LiveEnemies() {
		pos, _ := c.state.PositionOf(id)
		if types.GroundDistance(pos, center) > radius {
			continue
		}
		c.hitEnemy(id, damage, tornado)
	}
}

// hitEnemy 直接扣血，不带任何附加效果
func (c *CombatSystem) hitEnemy(id ecs.EntityID, damage float64, kill bool) {
	health, ok := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, id)
	if !ok {
		return
	}
	if kill {
		health.Current = 0
	} else {
		health.Current -= damage
	}
	c.state.Flash(id)
	c.checkEnemyDefeat(id)
}

func (c *CombatSystem) tornadoActive() bool {
	buffs, _ := c.playerModifiers()
	return buffs.Tornado > 0
}

// checkEnemyDefeat 生命值不大于 0 时结算击败
func (c *CombatSystem) checkEnemyDefeat(id ecs.EntityID) {
	health, ok := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, id)
	if ok && health.Current <= 0 {
		c.DefeatEnemy(id)
	}
}

// DefeatEnemy 结算敌人击败
//
// 每个敌人只结算一次：加积分、计数，非首领被击败后尝试生成首领，
// 然后进入倒地姿态，倒地窗口结束后由 LifetimeSystem 移除。
// 流氓机器人造成的击败走同一流程，同样计入首领门控
//
// 返回：
//   - bool: 本次调用是否完成了结算
func (c *CombatSystem) DefeatEnemy(id ecs.EntityID) bool {
	em := c.state.EntityManager
	combatant, ok := ecs.GetComponent[*components.CombatantComponent](em, id)
	if !ok || combatant.Defeated {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok || health.Current > 0 {
		return false
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
	if !ok {
		return false
	}

	combatant.Defeated = true
	if player, ok := c.state.Player(); ok {
		player.Points += enemy.Points
	}

	w := &c.state.Wave
	w.Defeated++
	if !enemy.IsBoss {
		w.NonBossDefeated++
		c.spawner.TrySpawnBoss()
	}

	if pose, ok := ecs.GetComponent[*components.PoseComponent](em, id); ok {
		pose.Pose = components.PoseFallen
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		pos.Position.Y = 0.5
	}
	ecs.AddComponent(em, id, &components.LifetimeComponent{Window: c.state.Gameplay().Enemy.DeathWindow})
	c.state.Cue(event.CueDefeat)
	return true
}

// DamageRogue 用武器属性攻击流氓机器人
func (c *CombatSystem) DamageRogue(cfg config.WeaponLevel) {
	if !c.state.RogueAlive() {
		return
	}
	buffs, mods := c.playerModifiers()
	health, _ := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, c.state.RogueID)
	if buffs.Tornado > 0 {
		health.Current = 0
	} else {
		health.Current -= cfg.Damage * mods.Damage
	}
	c.state.Cue(event.CueHit)
	if health.Current <= 0 {
		c.defeatRogue()
	}
}

// HitRogue 敌人攻击流氓机器人，不经过任何倍率
func (c *CombatSystem) HitRogue(amount float64) {
	if !c.state.RogueAlive() {
		return
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, c.state.RogueID)
	health.Current -= amount
	if health.Current <= 0 {
		c.defeatRogue()
	}
}

func (c *CombatSystem) defeatRogue() {
	if c.state.RogueID == ecs.InvalidEntity {
		return
	}
	c.state.EntityManager.DestroyEntity(c.state.RogueID)
	c.state.RogueID = ecs.InvalidEntity
	c.state.ShowMessage("Rogue defeated!", 1.6)
	c.state.Cue(event.CueDefeat)
	log.Printf("[CombatSystem] Rogue defeated")
}

// DamagePlayer 玩家受到 amount 点伤害
//
// 最终伤害 = amount × (1 − 格挡 − 护盾) × 防御倍率；
// 格挡只在当前武器为防御类时生效，护盾加成还要求本帧按住护盾键
func (c *CombatSystem) DamagePlayer(amount float64) {
	player, ok := c.state.Player()
	if !ok {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, c.state.PlayerID)
	if !ok {
		return
	}
	_, mods := c.playerModifiers()
	def, cfg := c.ActiveWeapon()

	block := 0.0
	shield := 0.0
	if def.Category == types.WeaponDefense {
		block = cfg.Block
		if player.ShieldHeld {
			shield = c.state.Gameplay().Player.ShieldBonus
		}
	}

	health.Current -= amount * (1 - block - shield) * mods.Defense
	c.state.Cue(event.CuePlayerHit)
	if health.Current <= 0 && !player.IsDead {
		c.killPlayer()
	}
}

// DamageTarget 敌人攻击其当前目标
func (c *CombatSystem) DamageTarget(amount float64, rogue bool) {
	if rogue && c.state.RogueAlive() {
		c.HitRogue(amount)
		return
	}
	c.DamagePlayer(amount)
}

// killPlayer 玩家死亡：停止模拟、清空增益、放倒模型并弹出结束提示
func (c *CombatSystem) killPlayer() {
	player, _ := c.state.Player()
	player.IsDead = true
	c.state.PlayerDead = true
	c.state.Running = false

	c.buffs.ClearAll()
	c.setPose(components.PoseToppled)
	c.state.ShowMessage("You were destroyed!", 2.5)
	c.state.Emit(event.EventGameOver, event.GameOverPayload{Wave: c.state.Wave.Current})
	log.Printf("[CombatSystem] Player destroyed on wave %d", c.state.Wave.Current)
}

// ResetPlayer 恢复玩家到出生状态（满血、站立、无增益、无冷却）
func (c *CombatSystem) ResetPlayer() {
	em := c.state.EntityManager
	player, ok := c.state.Player()
	if !ok {
		return
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, c.state.PlayerID); ok {
		health.Current = health.Max
	}
	player.IsDead = false
	player.AttackCooldown = 0
	player.BombCooldown = 0
	player.SwingTimer = 0
	c.state.PlayerDead = false

	c.buffs.ClearAll()
	c.setPose(components.PoseUpright)
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, c.state.PlayerID); ok {
		pos.Position = c.state.Layout.PlayerSpawn
	}
}

func (c *CombatSystem) setPose(p components.Pose) {
	pose, ok := ecs.GetComponent[*components.PoseComponent](c.state.EntityManager, c.state.PlayerID)
	if !ok || pose.Pose == p {
		return
	}
	pose.Pose = p
	c.state.Emit(event.EventPose, event.PosePayload{Entity: c.state.PlayerID, Toppled: p == components.PoseToppled})
}

// hitEnemyRaw 流氓机器人的攻击：只扣血和判定击败，不闪白
func (c *CombatSystem) hitEnemyRaw(id ecs.EntityID, damage float64) {
	health, ok := ecs.GetComponent[*components.HealthComponent](c.state.EntityManager, id)
	if !ok {
		return
	}
	health.Current -= damage
	c.checkEnemyDefeat(id)
}
