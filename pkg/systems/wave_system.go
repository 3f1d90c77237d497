package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

const waveIntroCategory = "wave-intro"

// WaveSystem 波次生命周期状态机
//
// 职责：
//   - 开波：清场、重置弹药和增益、切换地图、生成敌人和道具
//   - 每帧计时：开波宽限期、波次时长、看门狗补刷
//   - 完成判定：首领已生成且已击败、宽限期结束、波次时长超过下限
//   - 下一波踏板倒计时和南门提示
//
// 状态流转：Idle → WaveStarting → WaveActive → WaveComplete → WaveStarting ...
// 玩家死亡不属于阶段，由 SimulationState.PlayerDead 单独表示
type WaveSystem struct {
	state   *game.SimulationState
	spawner *Spawner
	combat  *CombatSystem
	buffs   *BuffSystem
}

// NewWaveSystem 创建波次系统
func NewWaveSystem(state *game.SimulationState, spawner *Spawner, combat *CombatSystem, buffs *BuffSystem) *WaveSystem {
	return &WaveSystem{
		state:   state,
		spawner: spawner,
		combat:  combat,
		buffs:   buffs,
	}
}

// StartWave 开始第 n 波
//
// 清空敌人、弹体、炸弹和流氓机器人；重置弹药、增益和冷却；
// 按 n 选择地图并重新计算布局，大厅设施随大厅原点平移；
// 玩家回到出生点，在敌人入口生成本波敌人和初始道具
func (s *WaveSystem) StartWave(n int) {
	if n < 1 {
		n = 1
	}
	st := s.state
	em := st.EntityManager
	w := &st.Wave
	tuning := st.Gameplay().Wave

	w.WaveStartQueued = false
	w.Complete = false
	w.StartGrace = tuning.StartGrace
	w.Elapsed = 0
	w.Spawned = 0
	w.Defeated = 0
	w.NonBossSpawned = 0
	w.NonBossDefeated = 0
	w.BossSpawned = false
	w.NextWaveCountdown = 0
	w.Current = n
	w.Pending = n
	st.Running = true

	game.DestroyAll[*components.EnemyComponent](em)
	game.DestroyAll[*components.ProjectileComponent](em)
	game.DestroyAll[*components.BombComponent](em)
	game.DestroyAll[*components.RogueComponent](em)
	st.RogueID = ecs.InvalidEntity

	if player, ok := st.Player(); ok {
		if player.IsDead {
			s.combat.ResetPlayer()
		}
		player.SpearAmmo = st.Gameplay().Player.SpearAmmo
		player.BombAmmo = st.Data.Weapons.BombCap()
		player.AttackCooldown = 0
		player.BombCooldown = 0
		player.SwingTimer = 0
		player.ActiveSlot = types.SlotPrimary
	}
	s.buffs.ClearAll()

	s.applyMap(n)
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, st.PlayerID); ok {
		pos.Position = st.Layout.PlayerSpawn
	}

	s.spawner.SpawnWaveBatch(n, st.Layout.EnemyGate)
	s.spawner.EnsureEnemy()

	for i := 0; i < tuning.InitialPowerups; i++ {
		s.spawner.SpawnPowerup()
	}
	s.spawner.TrySpawnRogue()

	w.Phase = game.PhaseWaveStarting
	st.Armory = event.ArmoryClosed
	s.setPadVisible(false)

	st.Emit(event.EventWave, event.WavePayload{Wave: n})
	st.Emit(event.EventBossHealth, event.BossHealthPayload{Percent: 100})
	st.ShowMessage(fmt.Sprintf("Wave %d starting...", n), 2.0)
	st.Scheduler.Schedule(waveIntroCategory, tuning.IntroMessageDelay, func() {
		st.ShowMessage("Enemies entering...", 1.8)
	})
	log.Printf("[WaveSystem] Wave %d started on map %q (size %.0f), %d enemies",
		n, st.Data.Maps.ForWave(n).Name, st.Layout.Size, w.Spawned)
}

// applyMap 切换到第 n 波的地图，平移大厅设施
// 位移可以忽略时 Layout.Apply 返回零向量
func (s *WaveSystem) applyMap(n int) {
	st := s.state
	delta := st.Layout.Apply(st.Data.Maps.ForWave(n).Size)

	em := st.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.FixtureComponent, *components.PositionComponent](em) {
		fixture, _ := ecs.GetComponent[*components.FixtureComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if fixture.Kind == components.FixtureNextWavePad {
			pos.Position = st.Layout.StartWave
			continue
		}
		if fixture.InLobby {
			pos.Position = pos.Position.Add(delta)
		}
	}
}

// Tick 推进宽限期和波次时长，处理看门狗补刷
func (s *WaveSystem) Tick(dt float64) {
	w := &s.state.Wave
	if w.StartGrace > 0 {
		w.StartGrace = math.Max(0, w.StartGrace-dt)
	}
	if w.Phase == game.PhaseWaveStarting && w.StartGrace == 0 {
		w.Phase = game.PhaseWaveActive
	}
	if w.Complete {
		return
	}
	w.Elapsed += dt

	if w.Elapsed > s.state.Gameplay().Wave.WatchdogSeconds && w.Spawned == 0 {
		log.Printf("[WaveSystem] Watchdog: wave %d has no spawns after %.1fs, re-issuing batch", w.Current, w.Elapsed)
		s.spawner.SpawnWaveBatch(w.Current, s.state.Layout.EnemyGate)
		s.spawner.EnsureEnemy()
	}
}

// CheckCompletion 判定波次完成
//
// 条件：未完成、玩家存活、首领已生成、没有存活首领、宽限期结束、
// 波次时长超过下限且本波至少生成过一个敌人
//
// 返回：
//   - bool: 本次调用是否完成了波次
func (s *WaveSystem) CheckCompletion() bool {
	w := &s.state.Wave
	if w.Complete || s.state.PlayerDead || !w.BossSpawned || w.StartGrace > 0 {
		return false
	}
	if w.Elapsed <= s.state.Gameplay().Wave.MinElapsedForComplete || w.Spawned == 0 {
		return false
	}
	if _, alive := s.state.LiveBoss(); alive {
		return false
	}
	s.handleComplete()
	return true
}

func (s *WaveSystem) handleComplete() {
	st := s.state
	w := &st.Wave
	w.Complete = true
	w.Pending = w.Current + 1
	w.WaveStartQueued = false
	w.Phase = game.PhaseWaveComplete

	if health, ok := ecs.GetComponent[*components.HealthComponent](st.EntityManager, st.PlayerID); ok {
		health.Current = health.Max
	}
	s.setPadVisible(true)

	st.Emit(event.EventWave, event.WavePayload{Wave: w.Current, Complete: true})
	st.Emit(event.EventBossHealth, event.BossHealthPayload{Percent: 100})
	st.ShowMessage(fmt.Sprintf("Wave %d complete!", w.Current), 2.2)
	st.Cue(event.CueWaveComplete)
	log.Printf("[WaveSystem] Wave %d complete after %.1fs (defeated %d/%d)", w.Current, w.Elapsed, w.Defeated, w.Spawned)
}

// UpdateGateMessages 玩家靠近南门时提示门的状态
func (s *WaveSystem) UpdateGateMessages() {
	st := s.state
	if types.GroundDistance(st.PlayerPosition(), st.Layout.SouthGate) >= st.Gameplay().Arena.GateMessageRadius {
		return
	}
	if st.Wave.Complete {
		st.ShowMessage("Gate open to Armory Lobby", 1.2)
	} else {
		st.ShowMessage("Plasma shield active", 1.2)
	}
}

// UpdatePad 下一波踏板：站上去开始倒计时，离开取消
func (s *WaveSystem) UpdatePad() {
	st := s.state
	w := &st.Wave
	tuning := st.Gameplay().Wave

	onPad := w.Complete && types.GroundDistance(st.PlayerPosition(), st.Layout.StartWave) < tuning.PadRadius
	if onPad && !w.WaveStartQueued && w.NextWaveCountdown == 0 {
		w.NextWaveCountdown = tuning.NextWaveCountdown
		w.WaveStartQueued = true
	}
	if !onPad && w.NextWaveCountdown > 0 {
		w.NextWaveCountdown = 0
		w.WaveStartQueued = false
	}
}

// UpdateCountdown 推进下一波倒计时，归零且波次已完成时开始待开波次
func (s *WaveSystem) UpdateCountdown(dt float64) {
	w := &s.state.Wave
	if w.NextWaveCountdown <= 0 {
		return
	}
	w.NextWaveCountdown = math.Max(0, w.NextWaveCountdown-dt)
	s.state.ShowMessage(fmt.Sprintf("Next wave in %d...", int(math.Ceil(w.NextWaveCountdown))), 0.9)
	if w.NextWaveCountdown == 0 && w.Complete {
		s.StartWave(w.Pending)
	}
}

// setPadVisible 设置下一波踏板可见性
func (s *WaveSystem) setPadVisible(visible bool) {
	if id, ok := fixtureOfKind(s.state, components.FixtureNextWavePad); ok {
		fixture, _ := ecs.GetComponent[*components.FixtureComponent](s.state.EntityManager, id)
		fixture.Visible = visible
	}
}

// fixtureOfKind 返回指定种类的第一个设施
func fixtureOfKind(state *game.SimulationState, kind components.FixtureKind) (ecs.EntityID, bool) {
	em := state.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.FixtureComponent](em) {
		fixture, _ := ecs.GetComponent[*components.FixtureComponent](em, id)
		if fixture.Kind == kind {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}
