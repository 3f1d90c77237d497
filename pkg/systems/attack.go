package systems

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/entities"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/types"
)

const (
	arrowHeight = 1.4
	spearHeight = 1.2
)

// PerformAttack 按当前武器类别执行一次攻击
// 调用方负责检查眩晕和冷却；本方法设置挥动计时和冷却
//
// 分发规则：
//   - 追踪增益下的近战武器额外射出一支追踪箭
//   - 远程：射箭
//   - 炸弹：冷却改为炸弹冷却，追踪增益下射出弹头箭，否则放置炸弹
//   - 长矛：最近的存活敌人超出攻击距离时投掷，否则按近战处理
//   - 其余：近战横扫
func (c *CombatSystem) PerformAttack() {
	player, ok := c.state.Player()
	if !ok {
		return
	}
	buffs, _ := c.playerModifiers()
	tuning := c.state.Gameplay().Player
	def, cfg := c.ActiveWeapon()

	player.SwingTimer = tuning.SwingTime
	player.AttackCooldown = cfg.Cooldown
	homing := buffs.Homing > 0

	if homing && def.Category == types.WeaponMelee {
		homingCfg := cfg
		homingCfg.ProjectileSpeed = tuning.HomingArrowSpeed
		c.FireArrow(homingCfg, true, false)
	}

	switch def.Category {
	case types.WeaponRanged:
		c.FireArrow(cfg, homing, false)
		return
	case types.WeaponBomb:
		player.AttackCooldown = tuning.BombCooldown
		c.dropBomb(cfg, homing)
		return
	case types.WeaponSpear:
		if cfg.ThrowSpeed > 0 {
			_, dist, found := c.state.NearestLiveEnemy(c.state.PlayerPosition())
			if !found || dist > cfg.Range {
				c.ThrowSpear(cfg)
				return
			}
		}
	}

	c.meleeSweep(cfg)
}

// UseBomb 炸弹键：用装备中的炸弹武器放置炸弹，与普通攻击冷却独立
//
// 返回：
//   - bool: 是否放出了炸弹或弹头箭
func (c *CombatSystem) UseBomb() bool {
	player, ok := c.state.Player()
	if !ok || player.BombCooldown > 0 {
		return false
	}
	bombID := c.state.Data.Weapons.BombWeaponID()
	if bombID == "" || (player.PrimaryWeapon != bombID && player.SecondaryWeapon != bombID) {
		return false
	}
	buffs, _ := c.playerModifiers()
	_, cfg := c.Weapon(bombID)
	player.BombCooldown = c.state.Gameplay().Player.BombCooldown
	return c.dropBomb(cfg, buffs.Homing > 0)
}

func (c *CombatSystem) dropBomb(cfg config.WeaponLevel, homing bool) bool {
	if homing {
		tipCfg := cfg
		tipCfg.ProjectileSpeed = c.state.Gameplay().Player.HomingArrowSpeed
		c.FireArrow(tipCfg, true, true)
		return true
	}
	return c.PlaceBomb(cfg)
}

// meleeSweep 对攻击距离内的所有存活敌人、流氓机器人和（大厅中的）训练假人结算伤害
func (c *CombatSystem) meleeSweep(cfg config.WeaponLevel) {
	em := c.state.EntityManager
	origin := c.state.PlayerPosition()

	for _, id := range c.state.LiveEnemies() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok || types.GroundDistance(pos.Position, origin) >= cfg.Range {
			continue
		}
		c.ApplyWeaponDamage(id, cfg)
		if cfg.Push > 0 {
			dir := pos.Position.Sub(origin).Ground().Normalize()
			pos.Position = c.state.Layout.ClampToArena(pos.Position.Add(dir.Scale(cfg.Push)))
		}
	}

	if c.state.RogueAlive() {
		if pos, ok := c.state.PositionOf(c.state.RogueID); ok && types.GroundDistance(pos, origin) < cfg.Range {
			c.DamageRogue(cfg)
		}
	}

	if c.state.InLobby() && c.state.DummyID != ecs.InvalidEntity {
		if pos, ok := c.state.PositionOf(c.state.DummyID); ok && types.GroundDistance(pos, origin) < cfg.Range {
			c.state.Flash(c.state.DummyID)
		}
	}
}

// FireArrow 沿玩家最近的移动方向射出箭矢
// 速度取 cfg.ProjectileSpeed，未配置时使用默认箭速
func (c *CombatSystem) FireArrow(cfg config.WeaponLevel, homing, bombTip bool) ecs.EntityID {
	player, ok := c.state.Player()
	if !ok {
		return ecs.InvalidEntity
	}
	speed := cfg.ProjectileSpeed
	if speed <= 0 {
		speed = c.state.Gameplay().Projectile.DefaultSpeed
	}
	pos := c.state.PlayerPosition()
	pos.Y = arrowHeight
	return entities.NewArrowEntity(c.state.EntityManager, pos, player.AimDirection(), speed, cfg, homing, bombTip)
}

// ThrowSpear 投掷长矛，需要至少一支长矛弹药
func (c *CombatSystem) ThrowSpear(cfg config.WeaponLevel) bool {
	player, ok := c.state.Player()
	if !ok || player.SpearAmmo <= 0 {
		return false
	}
	buffs, _ := c.playerModifiers()
	pos := c.state.PlayerPosition()
	pos.Y = spearHeight
	entities.NewSpearEntity(c.state.EntityManager, pos, player.AimDirection(), cfg.ThrowSpeed, cfg, buffs.Homing > 0)
	player.SpearAmmo--
	c.state.Cue(event.CueThrow)
	return true
}

// PlaceBomb 在玩家脚下放置炸弹
// 场上炸弹数未达上限且有炸弹弹药时才会放置
func (c *CombatSystem) PlaceBomb(cfg config.WeaponLevel) bool {
	player, ok := c.state.Player()
	if !ok {
		return false
	}
	active := len(ecs.GetEntitiesWith1[*components.BombComponent](c.state.EntityManager))
	if active >= c.state.Data.Weapons.BombCap() || player.BombAmmo <= 0 {
		return false
	}
	entities.NewBombEntity(c.state.EntityManager, c.state.PlayerPosition(), c.state.Gameplay().Projectile.BombFuse, cfg)
	player.BombAmmo--
	return true
}
