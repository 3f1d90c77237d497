package scenes

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/entities"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/input"
	"github.com/gonewx/blockbattle/pkg/systems"
)

// ArenaOptions 竞技场场景的启动选项
type ArenaOptions struct {
	StartWave    int  // 第一次开波使用的波次，小于 1 时为 1
	RogueEnabled bool // 是否允许流氓机器人出现
	Debug        bool // 是否输出调试计数
	SkipArmory   bool // 跳过开局军械库，直接以默认武器开波
}

// ArenaScene 竞技场场景
//
// 职责：
//   - 持有 SimulationState 和全部模拟系统
//   - 按固定顺序推进每一帧
//   - 提供暂停、重试、军械库、流氓开关等外部入口
//
// 场景本身不做渲染，窗口、终端和快照工具都读取 State() 自行绘制
type ArenaScene struct {
	state *game.SimulationState

	spawner     *systems.Spawner
	buffs       *systems.BuffSystem
	combat      *systems.CombatSystem
	player      *systems.PlayerSystem
	enemies     *systems.EnemyAISystem
	rogue       *systems.RogueSystem
	projectiles *systems.ProjectileSystem
	spears      *systems.SpearSystem
	bombs       *systems.BombSystem
	powerups    *systems.PowerupSystem
	waves       *systems.WaveSystem
	armory      *systems.ArmorySystem
	lobby       *systems.LobbySystem
	flash       *systems.FlashEffectSystem
	lifetime    *systems.LifetimeSystem
	hud         *systems.HUDSystem
}

// NewArenaScene 创建竞技场场景
//
// 参数：
//   - data: 已加载的游戏数据
//   - rng: 随机源，nil 时使用固定种子
//   - opts: 启动选项
//
// 返回：
//   - *ArenaScene: 场景实例；未跳过军械库时处于选武器阶段
//   - error: 玩家实体创建失败
func NewArenaScene(data *config.GameData, rng *rand.Rand, opts ArenaOptions) (*ArenaScene, error) {
	state := game.NewSimulationState(data, rng)
	state.RogueEnabled = opts.RogueEnabled
	state.Debug = opts.Debug

	playerID, err := entities.NewPlayerEntity(state.EntityManager, data, state.Layout.PlayerSpawn)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	state.PlayerID = playerID
	fixtures := entities.NewLobbyFixtures(state.EntityManager, state.Layout.LobbyOrigin, state.Layout.StartWave, data.Gameplay.Lobby)
	state.DummyID = fixtures.Dummy

	s := &ArenaScene{state: state}
	s.spawner = systems.NewSpawner(state)
	s.buffs = systems.NewBuffSystem(state)
	s.combat = systems.NewCombatSystem(state, s.spawner, s.buffs)
	s.player = systems.NewPlayerSystem(state, s.combat)
	s.enemies = systems.NewEnemyAISystem(state, s.combat)
	s.rogue = systems.NewRogueSystem(state, s.combat)
	s.projectiles = systems.NewProjectileSystem(state, s.combat)
	s.spears = systems.NewSpearSystem(state, s.combat, s.projectiles)
	s.bombs = systems.NewBombSystem(state, s.combat)
	s.powerups = systems.NewPowerupSystem(state, s.spawner, s.buffs)
	s.waves = systems.NewWaveSystem(state, s.spawner, s.combat, s.buffs)
	s.armory = systems.NewArmorySystem(state, s.waves)
	s.lobby = systems.NewLobbySystem(state, s.armory)
	s.flash = systems.NewFlashEffectSystem(state.EntityManager)
	s.lifetime = systems.NewLifetimeSystem(state.EntityManager)
	s.hud = systems.NewHUDSystem(state)

	start := opts.StartWave
	if start < 1 {
		start = 1
	}
	state.Wave.Current = start
	state.Wave.Pending = start

	if opts.SkipArmory {
		state.Running = true
		s.waves.StartWave(start)
	} else {
		s.armory.Open()
	}

	log.Printf("[ArenaScene] Created (wave=%d, rogue=%v, debug=%v, armory=%v)",
		start, opts.RogueEnabled, opts.Debug, !opts.SkipArmory)
	return s, nil
}

// State 返回模拟状态，供渲染层只读访问
func (s *ArenaScene) State() *game.SimulationState {
	return s.state
}

// Events 返回事件分发器
func (s *ArenaScene) Events() *event.Dispatcher {
	return s.state.Events
}

// Update 推进一帧
//
// 顺序：暂停短路 → 延迟回调 → 死亡/未运行短路 → 增益与波次计时 → 玩家 →
// 敌人、流氓（玩家阵亡则到此为止）、投射物、炸弹、长矛 → 道具 → 闪白与倒地窗口清理 →
// 波次完成、门口提示、跳板、大厅站点、倒计时、道具刷新 → HUD
func (s *ArenaScene) Update(dt float64, in input.Input) {
	st := s.state
	if st.Paused || s.armory.IsOpen() {
		return
	}

	st.Scheduler.Advance(dt)

	if !st.Running || st.PlayerDead {
		s.hud.Update(dt)
		return
	}

	s.buffs.Update(dt)
	s.waves.Tick(dt)

	s.player.Update(dt, in)

	s.enemies.Update(dt)
	s.rogue.Update(dt)
	if st.PlayerDead {
		// 玩家本帧阵亡，后续系统不再推进，保持游戏结束时的局面
		st.EntityManager.RemoveMarkedEntities()
		s.hud.Update(dt)
		return
	}
	s.projectiles.Update(dt)
	s.bombs.Update(dt)
	s.spears.Update(dt)

	if !st.InLobby() {
		s.powerups.Update(dt)
	}

	s.flash.Update(dt)
	s.lifetime.Update(dt)
	st.EntityManager.RemoveMarkedEntities()

	s.waves.CheckCompletion()
	s.waves.UpdateGateMessages()
	s.waves.UpdatePad()
	s.lobby.Update(in.Interact)
	s.waves.UpdateCountdown(dt)
	s.powerups.UpdateCadence(dt)

	s.hud.Update(dt)
}

// Retry 重新开始当前波次
func (s *ArenaScene) Retry() {
	if s.armory.IsOpen() {
		return
	}
	s.state.Paused = false
	s.combat.ResetPlayer()
	s.state.Running = true
	log.Printf("[ArenaScene] Retry wave %d", s.state.Wave.Current)
	s.waves.StartWave(s.state.Wave.Current)
}

// TogglePause 切换暂停
// 玩家死亡或军械库打开时忽略
func (s *ArenaScene) TogglePause() {
	if s.state.PlayerDead || s.armory.IsOpen() {
		return
	}
	s.state.Paused = !s.state.Paused
	if s.state.Paused {
		// 暂停期间延迟回调不推进，横幅会一直显示到恢复
		s.state.ShowMessage("Paused", 1.2)
	}
}

// ReturnToArmory 结束画面回到军械库，确认后重新开始当前波次
func (s *ArenaScene) ReturnToArmory() {
	s.combat.ResetPlayer()
	s.state.Paused = false
	s.state.Running = false
	s.state.Wave.Pending = s.state.Wave.Current
	s.armory.Open()
}

// ToggleRogue 切换流氓机器人开关，返回新的状态
// 关闭只影响之后的开波，已出现的流氓机器人留到本波结束
func (s *ArenaScene) ToggleRogue() bool {
	s.state.RogueEnabled = !s.state.RogueEnabled
	log.Printf("[ArenaScene] Rogue enabled: %v", s.state.RogueEnabled)
	return s.state.RogueEnabled
}

// ArmoryOpen 军械库是否打开
func (s *ArenaScene) ArmoryOpen() bool {
	return s.armory.IsOpen()
}

// ArmoryOptions 军械库可选武器
func (s *ArenaScene) ArmoryOptions() []string {
	return s.armory.Options()
}

// ArmorySelect 为当前军械库阶段选择武器
func (s *ArenaScene) ArmorySelect(id string) bool {
	return s.armory.Select(id)
}

// ArmoryConfirm 确认当前军械库阶段
func (s *ArenaScene) ArmoryConfirm() {
	s.armory.Confirm()
}

// ArmoryBack 军械库回到主武器阶段
func (s *ArenaScene) ArmoryBack() {
	s.armory.Back()
}

// DebugCounters 返回最近一次发出的调试计数，可在其他 goroutine 调用
func (s *ArenaScene) DebugCounters() event.DebugCounters {
	return s.hud.Snapshot()
}

// Counters 当前帧的调试计数
func (s *ArenaScene) Counters() event.DebugCounters {
	return s.hud.Counters()
}
