package systems

import (
	"log"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// ArmorySystem 军械库：先选主武器，再选副武器
//
// 开局和大厅换装台都会打开军械库。确认副武器后关闭，
// 并开始待开波次。军械库打开期间模拟暂停
type ArmorySystem struct {
	state *game.SimulationState
	waves *WaveSystem
}

// NewArmorySystem 创建军械库系统
func NewArmorySystem(state *game.SimulationState, waves *WaveSystem) *ArmorySystem {
	return &ArmorySystem{
		state: state,
		waves: waves,
	}
}

// IsOpen 军械库是否打开
func (s *ArmorySystem) IsOpen() bool {
	return s.state.Armory != event.ArmoryClosed
}

// Options 返回可选武器（不含徒手）
func (s *ArmorySystem) Options() []string {
	ids := s.state.Data.Weapons.IDs()
	options := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != config.FallbackWeaponID {
			options = append(options, id)
		}
	}
	return options
}

// Open 从主武器阶段打开军械库
func (s *ArmorySystem) Open() {
	s.setStage(event.ArmoryPrimary)
}

// Back 回到主武器阶段
func (s *ArmorySystem) Back() {
	if !s.IsOpen() {
		return
	}
	s.setStage(event.ArmoryPrimary)
}

// Select 为当前阶段的槽位选择武器
// 选择的武器已装备在另一个槽位时两个槽位互换
//
// 返回：
//   - bool: 是否接受了选择
func (s *ArmorySystem) Select(id string) bool {
	if !s.IsOpen() || id == config.FallbackWeaponID || !s.state.Data.Weapons.Has(id) {
		return false
	}
	player, ok := s.state.Player()
	if !ok {
		return false
	}

	slot := types.SlotPrimary
	if s.state.Armory == event.ArmorySecondary {
		slot = types.SlotSecondary
	}
	current, other := &player.PrimaryWeapon, &player.SecondaryWeapon
	if slot == types.SlotSecondary {
		current, other = other, current
	}
	if *other == id {
		*current, *other = *other, *current
	} else {
		*current = id
	}
	return true
}

// Confirm 确认当前阶段
// 主武器阶段进入副武器阶段；副武器阶段关闭军械库并开始待开波次
func (s *ArmorySystem) Confirm() {
	switch s.state.Armory {
	case event.ArmoryPrimary:
		s.setStage(event.ArmorySecondary)
	case event.ArmorySecondary:
		s.setStage(event.ArmoryClosed)
		s.state.Running = true
		if player, ok := s.state.Player(); ok {
			player.ActiveSlot = types.SlotPrimary
			log.Printf("[ArmorySystem] Loadout: %s / %s", player.PrimaryWeapon, player.SecondaryWeapon)
		}
		s.waves.StartWave(s.state.Wave.Pending)
	}
}

func (s *ArmorySystem) setStage(stage event.ArmoryStage) {
	s.state.Armory = stage
	payload := event.ArmoryPayload{Stage: stage}
	if stage != event.ArmoryClosed {
		payload.Options = s.Options()
	}
	s.state.Emit(event.EventArmoryOpen, payload)
}
