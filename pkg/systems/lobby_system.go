package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// LobbySystem 大厅站点交互
//
// 只在波次完成后生效。玩家站在某个站点的交互半径内时显示提示，
// 本帧按下交互键则执行站点动作；多个站点重叠时按
// 升级台、换装台、返回传送门的顺序只处理第一个
type LobbySystem struct {
	state  *game.SimulationState
	armory *ArmorySystem
}

// NewLobbySystem 创建大厅系统
func NewLobbySystem(state *game.SimulationState, armory *ArmorySystem) *LobbySystem {
	return &LobbySystem{
		state:  state,
		armory: armory,
	}
}

// Update 处理站点提示和交互
func (s *LobbySystem) Update(interact bool) {
	if !s.state.Wave.Complete {
		return
	}
	switch {
	case s.near(components.FixtureUpgradePad):
		s.state.ShowMessage("Press F to upgrade active weapon", 1.2)
		if interact {
			s.TryUpgradeActiveWeapon()
		}
	case s.near(components.FixtureSwitchPad):
		s.state.ShowMessage("Press F to switch weapons", 1.2)
		if interact {
			s.armory.Open()
		}
	case s.near(components.FixtureReturnPortal):
		s.state.ShowMessage("Press F to return to arena", 1.2)
		if interact {
			s.returnToArena()
		}
	}
}

func (s *LobbySystem) near(kind components.FixtureKind) bool {
	id, ok := fixtureOfKind(s.state, kind)
	if !ok {
		return false
	}
	pos, ok := s.state.PositionOf(id)
	if !ok {
		return false
	}
	return types.GroundDistance(pos, s.state.PlayerPosition()) < s.state.Gameplay().Lobby.InteractRadius
}

// TryUpgradeActiveWeapon 用积分升级当前槽位的武器
//
// 返回：
//   - bool: 是否升级成功
func (s *LobbySystem) TryUpgradeActiveWeapon() bool {
	player, ok := s.state.Player()
	if !ok {
		return false
	}
	def := s.state.Data.Weapons.Get(player.ActiveWeaponID())
	current := player.LevelOf(def.ID)
	next := current + 1
	if next > def.MaxLevel() {
		next = def.MaxLevel()
	}
	if next == current {
		s.state.ShowMessage("Weapon already maxed", 1.2)
		return false
	}

	cost := def.UpgradeCost(next)
	if player.Points < cost {
		s.state.ShowMessage("Not enough points", 1.2)
		return false
	}

	player.Points -= cost
	if player.WeaponLevels == nil {
		player.WeaponLevels = make(map[string]int)
	}
	player.WeaponLevels[def.ID] = next
	s.state.ShowMessage(fmt.Sprintf("%s upgraded to Lv %d", def.Name, next), 1.4)
	s.state.Cue(event.CuePickup)
	log.Printf("[LobbySystem] %s upgraded to level %d for %d points", def.ID, next, cost)
	return true
}

// returnToArena 传送回竞技场出生点并开始下一波倒计时
func (s *LobbySystem) returnToArena() {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.state.EntityManager, s.state.PlayerID); ok {
		pos.Position = s.state.Layout.PlayerSpawn
	}
	w := &s.state.Wave
	w.NextWaveCountdown = s.state.Gameplay().Wave.NextWaveCountdown
	w.WaveStartQueued = true
	s.state.ShowMessage("Returning to arena...", 1.2)
}
