package game

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/scheduler"
	"github.com/gonewx/blockbattle/pkg/types"
)

// Phase 波次生命周期阶段
// 玩家死亡是与阶段正交的 SimulationState.PlayerDead 标志
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaveStarting
	PhaseWaveActive
	PhaseWaveComplete
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaveStarting:
		return "wave_starting"
	case PhaseWaveActive:
		return "wave_active"
	case PhaseWaveComplete:
		return "wave_complete"
	default:
		return "unknown"
	}
}

// WaveState 当前波次的计数和计时
// 计数在每次开波时清零，波内只增不减
type WaveState struct {
	Current  int
	Pending  int // 下一次开波使用的波次
	Complete bool

	StartGrace float64 // 开波宽限期，期间不做完成判定
	Elapsed    float64 // 本波已进行时间，完成后停止增长

	Spawned         int
	Defeated        int
	NonBossSpawned  int
	NonBossDefeated int
	BossSpawned     bool

	NextWaveCountdown float64
	WaveStartQueued   bool

	Phase Phase
}

// SimulationState 模拟的全部可变状态
// 由生命周期系统持有，按引用传给各个系统；Complete、Paused、PlayerDead
// 只由波次系统、玩家死亡流程和场景的暂停/重试入口修改
type SimulationState struct {
	EntityManager *ecs.EntityManager
	Data          *config.GameData
	Layout        *arena.Layout
	Resolver      *arena.Resolver
	Scheduler     *scheduler.Deferred
	Events        *event.Dispatcher
	Rand          *rand.Rand

	Wave WaveState

	PlayerID ecs.EntityID
	RogueID  ecs.EntityID // 没有流氓机器人时为 ecs.InvalidEntity
	DummyID  ecs.EntityID

	Running    bool
	Paused     bool
	PlayerDead bool

	RogueEnabled bool
	Debug        bool

	Armory event.ArmoryStage

	PowerupSpawnTimer float64

	// 当前横幅文字，隐藏后为空
	Message string
}

// NewSimulationState 创建空的模拟状态，布局使用第一张地图
func NewSimulationState(data *config.GameData, rng *rand.Rand) *SimulationState {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	layout := arena.NewLayout(data.Gameplay.Arena, data.Gameplay.Lobby, data.Maps.ForWave(1).Size)
	return &SimulationState{
		EntityManager:     ecs.NewEntityManager(),
		Data:              data,
		Layout:            layout,
		Resolver:          arena.NewResolver(layout),
		Scheduler:         scheduler.NewDeferred(),
		Events:            event.NewDispatcher(),
		Rand:              rng,
		PlayerID:          ecs.InvalidEntity,
		RogueID:           ecs.InvalidEntity,
		DummyID:           ecs.InvalidEntity,
		Armory:            event.ArmoryClosed,
		PowerupSpawnTimer: data.Gameplay.Powerup.FirstSpawnDelay,
		Wave:              WaveState{Current: 1, Pending: 1},
	}
}

// Gameplay 返回玩法调参
func (s *SimulationState) Gameplay() *config.GameplayConfig {
	return s.Data.Gameplay
}

// Emit 发出事件
func (s *SimulationState) Emit(eventType event.EventType, data interface{}) {
	s.Events.Emit(eventType, data)
}

// Cue 发出音效提示
func (s *SimulationState) Cue(cue event.AudioCue) {
	s.Events.Emit(event.EventAudioCue, event.AudioCuePayload{Cue: cue})
}

// ShowMessage 显示横幅，duration 秒后隐藏
// 新消息会取消上一条消息的隐藏回调
func (s *SimulationState) ShowMessage(text string, duration float64) {
	s.Message = text
	s.Emit(event.EventMessage, event.MessagePayload{Text: text, Duration: duration})
	s.Scheduler.Schedule("message", duration, func() {
		s.Message = ""
		s.Emit(event.EventMessage, event.MessagePayload{})
	})
}

// Flash 请求实体闪白，到期由延迟回调恢复
func (s *SimulationState) Flash(id ecs.EntityID) {
	if !s.EntityManager.Exists(id) {
		return
	}
	duration := s.Gameplay().Combat.FlashSeconds
	ecs.AddComponent(s.EntityManager, id, &components.FlashEffectComponent{Duration: duration, Intensity: 1})
	s.Emit(event.EventFlash, event.FlashPayload{Entity: id, Active: true, Duration: duration})

	s.Scheduler.Schedule(fmt.Sprintf("flash:%d", id), duration, func() {
		if s.EntityManager.Exists(id) {
			ecs.RemoveComponent[*components.FlashEffectComponent](s.EntityManager, id)
		}
		s.Emit(event.EventFlash, event.FlashPayload{Entity: id, Active: false})
	})
}

// Player 返回玩家组件
func (s *SimulationState) Player() (*components.PlayerComponent, bool) {
	return ecs.GetComponent[*components.PlayerComponent](s.EntityManager, s.PlayerID)
}

// PlayerPosition 返回玩家位置
func (s *SimulationState) PlayerPosition() types.Vec3 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.EntityManager, s.PlayerID); ok {
		return pos.Position
	}
	return types.Vec3{}
}

// InLobby 玩家是否在大厅内
func (s *SimulationState) InLobby() bool {
	return s.Layout.InLobby(s.PlayerPosition())
}

// IsLiveEnemy 敌人是否存活且未被击败
func (s *SimulationState) IsLiveEnemy(id ecs.EntityID) bool {
	if s.EntityManager.IsMarkedForDestroy(id) {
		return false
	}
	if !ecs.HasComponent[*components.EnemyComponent](s.EntityManager, id) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.EntityManager, id)
	if !ok || !health.Alive() {
		return false
	}
	combatant, ok := ecs.GetComponent[*components.CombatantComponent](s.EntityManager, id)
	return ok && !combatant.Defeated
}

// Enemies 返回所有敌人实体，包括倒地窗口中的
func (s *SimulationState) Enemies() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EnemyComponent](s.EntityManager)
}

// LiveEnemies 返回存活且未被击败的敌人
func (s *SimulationState) LiveEnemies() []ecs.EntityID {
	all := s.Enemies()
	live := make([]ecs.EntityID, 0, len(all))
	for _, id := range all {
		if s.IsLiveEnemy(id) {
			live = append(live, id)
		}
	}
	return live
}

// LiveBoss 是否有存活的首领
func (s *SimulationState) LiveBoss() (ecs.EntityID, bool) {
	for _, id := range s.LiveEnemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EntityManager, id)
		if enemy.IsBoss {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// RogueAlive 流氓机器人是否存活
func (s *SimulationState) RogueAlive() bool {
	if s.RogueID == ecs.InvalidEntity || !s.EntityManager.Exists(s.RogueID) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.EntityManager, s.RogueID)
	return ok && health.Alive()
}

// PositionOf 返回实体位置
func (s *SimulationState) PositionOf(id ecs.EntityID) (types.Vec3, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.EntityManager, id)
	if !ok {
		return types.Vec3{}, false
	}
	return pos.Position, true
}

// NearestLiveEnemy 返回离 from 最近的存活敌人和距离
func (s *SimulationState) NearestLiveEnemy(from types.Vec3) (ecs.EntityID, float64, bool) {
	best := ecs.InvalidEntity
	bestDist := 0.0
	for _, id := range s.LiveEnemies() {
		pos, _ := s.PositionOf(id)
		d := types.GroundDistance(pos, from)
		if best == ecs.InvalidEntity || d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, bestDist, best != ecs.InvalidEntity
}

// DestroyAll 立即销毁带有组件 T 的所有实体
func DestroyAll[T any](em *ecs.EntityManager) int {
	ids := ecs.GetEntitiesWith1[T](em)
	for _, id := range ids {
		em.DestroyEntityNow(id)
	}
	return len(ids)
}
