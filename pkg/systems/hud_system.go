package systems

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
)

// hudValues 上一帧发出的 HUD 数值
type hudValues struct {
	health   float64
	wave     int
	complete bool
	boss     float64
	points   int
	weapon   event.WeaponPayload
	ammo     event.AmmoPayload
}

// HUDSystem 把模拟状态的变化转换成 HUD 事件
//
// 血量、波次、首领血量、积分、装备、弹药只在数值变化时发出；
// 调试开关打开时每隔 0.2 秒发出一次调试计数。
// 计数的最新副本由互斥锁保护，供调试 HTTP 服务在其他 goroutine 读取
type HUDSystem struct {
	state *game.SimulationState

	last    hudValues
	primed  bool
	debugCD float64

	mu       sync.RWMutex
	counters event.DebugCounters
}

// NewHUDSystem 创建 HUD 系统
func NewHUDSystem(state *game.SimulationState) *HUDSystem {
	return &HUDSystem{state: state}
}

// Reset 下一帧无条件重发全部数值
func (s *HUDSystem) Reset() {
	s.primed = false
	s.debugCD = 0
}

// Update 发出变化的 HUD 数值
func (s *HUDSystem) Update(dt float64) {
	current := s.collect()
	st := s.state

	if !s.primed || current.health != s.last.health {
		st.Emit(event.EventHealth, event.HealthPayload{Percent: current.health})
	}
	if !s.primed || current.wave != s.last.wave || current.complete != s.last.complete {
		st.Emit(event.EventWave, event.WavePayload{Wave: current.wave, Complete: current.complete})
	}
	if !s.primed || current.boss != s.last.boss {
		st.Emit(event.EventBossHealth, event.BossHealthPayload{Percent: current.boss})
	}
	if !s.primed || current.points != s.last.points {
		st.Emit(event.EventPoints, event.PointsPayload{Total: current.points})
	}
	if !s.primed || current.weapon != s.last.weapon {
		st.Emit(event.EventWeapon, current.weapon)
	}
	if !s.primed || current.ammo != s.last.ammo {
		st.Emit(event.EventAmmo, current.ammo)
	}
	s.last = current
	s.primed = true

	s.updateDebug(dt)
}

func (s *HUDSystem) collect() hudValues {
	st := s.state
	em := st.EntityManager
	v := hudValues{
		wave:     st.Wave.Current,
		complete: st.Wave.Complete,
		boss:     100,
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, st.PlayerID); ok {
		v.health = health.Percent()
	}
	if id, ok := st.LiveBoss(); ok {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		v.boss = health.Percent()
	}
	if player, ok := st.Player(); ok {
		v.points = player.Points
		v.weapon = event.WeaponPayload{
			Primary:        player.PrimaryWeapon,
			PrimaryLevel:   player.LevelOf(player.PrimaryWeapon),
			Secondary:      player.SecondaryWeapon,
			SecondaryLevel: player.LevelOf(player.SecondaryWeapon),
			Active:         player.ActiveSlot,
		}
		v.ammo = event.AmmoPayload{Spear: player.SpearAmmo, Bombs: player.BombAmmo}
	}
	return v
}

func (s *HUDSystem) updateDebug(dt float64) {
	if !s.state.Debug {
		return
	}
	s.debugCD -= dt
	if s.debugCD > 0 {
		return
	}
	s.debugCD = s.state.Gameplay().Debug.HUDInterval

	counters := s.Counters()
	s.mu.Lock()
	s.counters = counters
	s.mu.Unlock()
	s.state.Emit(event.EventDebug, event.DebugPayload{Text: DebugText(counters), Counters: counters})
}

// Counters 从当前状态计算调试计数
func (s *HUDSystem) Counters() event.DebugCounters {
	st := s.state
	w := st.Wave
	c := event.DebugCounters{
		Wave:            w.Current,
		Complete:        w.Complete,
		Pending:         w.Pending,
		BossSpawned:     w.BossSpawned,
		Enemies:         len(st.Enemies()),
		Spawned:         w.Spawned,
		Defeated:        w.Defeated,
		NonBossSpawned:  w.NonBossSpawned,
		NonBossDefeated: w.NonBossDefeated,
		Elapsed:         w.Elapsed,
		Grace:           w.StartGrace,
	}
	for _, id := range st.LiveEnemies() {
		c.Alive++
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](st.EntityManager, id)
		if enemy.IsBoss {
			c.BossAlive = true
		} else {
			c.NonBossAlive++
		}
	}
	return c
}

// Snapshot 返回最近一次发出的调试计数，可在任意 goroutine 调用
func (s *HUDSystem) Snapshot() event.DebugCounters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// DebugText 把调试计数格式化成多行文本
func DebugText(c event.DebugCounters) string {
	status := "active"
	if c.Complete {
		status = "complete"
	}
	bossAlive := "no"
	if c.BossAlive {
		bossAlive = "yes"
	}
	lines := []string{
		fmt.Sprintf("wave: %d (%s)", c.Wave, status),
		fmt.Sprintf("pendingWave: %d", c.Pending),
		fmt.Sprintf("bossSpawned: %t", c.BossSpawned),
		fmt.Sprintf("enemies: %d alive: %d", c.Enemies, c.Alive),
		fmt.Sprintf("nonBoss live: %d", c.NonBossAlive),
		fmt.Sprintf("spawned/defeated: %d/%d", c.Spawned, c.Defeated),
		fmt.Sprintf("nonBoss spawned/defeated: %d/%d", c.NonBossSpawned, c.NonBossDefeated),
		fmt.Sprintf("bossAlive: %s", bossAlive),
		fmt.Sprintf("waveElapsed: %.1fs", c.Elapsed),
		fmt.Sprintf("startGrace: %.1fs", c.Grace),
	}
	return strings.Join(lines, "\n")
}
