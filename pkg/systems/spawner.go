package systems

import (
	"log"

	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/entities"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// Spawner 敌人、首领、流氓机器人和道具的生成入口
//
// 职责：
//   - 按体型和波次创建敌人并维护波次生成计数
//   - 首领门控：非首领全部被击败后生成一次首领
//   - 按概率生成流氓机器人
//   - 场上道具的随机生成（数量上限）
//
// 架构说明：
//   - 被 WaveSystem（开波、看门狗）、CombatSystem（击败结算）和 PowerupSystem 共享
//   - 只修改 WaveState 的生成计数，不做阶段切换
type Spawner struct {
	state *game.SimulationState
}

// NewSpawner 创建生成器
func NewSpawner(state *game.SimulationState) *Spawner {
	return &Spawner{state: state}
}

// BatchCounts 返回第 n 波的初始敌人数量
// small = 2+n, medium = 1+⌊n/2⌋, large = ⌊n/3⌋
func BatchCounts(n int) (small, medium, large int) {
	if n < 1 {
		n = 1
	}
	return 2 + n, 1 + n/2, n / 3
}

// SpawnEnemy 在 pos 生成一个敌人，属性按当前波次换算
func (s *Spawner) SpawnEnemy(size types.EnemySize, pos types.Vec3) ecs.EntityID {
	w := &s.state.Wave
	stats := s.state.Data.Enemies.StatsFor(size, w.Current)
	id := entities.NewEnemyEntity(s.state.EntityManager, size, stats, pos)

	w.Spawned++
	if size != types.EnemyBoss {
		w.NonBossSpawned++
	}
	return id
}

// SpawnWaveBatch 在 at 生成第 n 波的初始敌人，返回生成数量
func (s *Spawner) SpawnWaveBatch(n int, at types.Vec3) int {
	small, medium, large := BatchCounts(n)
	for i := 0; i < small; i++ {
		s.SpawnEnemy(types.EnemySmall, at)
	}
	for i := 0; i < medium; i++ {
		s.SpawnEnemy(types.EnemyMedium, at)
	}
	for i := 0; i < large; i++ {
		s.SpawnEnemy(types.EnemyLarge, at)
	}
	log.Printf("[Spawner] Wave %d batch: small=%d medium=%d large=%d", n, small, medium, large)
	return small + medium + large
}

// EnsureEnemy 场上没有任何敌人时在敌人入口补一个小型敌人
func (s *Spawner) EnsureEnemy() bool {
	if len(s.state.Enemies()) > 0 {
		return false
	}
	s.SpawnEnemy(types.EnemySmall, s.state.Layout.EnemyGate)
	log.Printf("[Spawner] Empty wave, spawned fallback enemy")
	return true
}

// TrySpawnBoss 满足门控条件时生成首领
//
// 条件：本波尚未生成首领，至少生成过一个非首领敌人，
// 且非首领击败数已追上非首领生成数
//
// 返回：
//   - bool: 是否生成了首领
func (s *Spawner) TrySpawnBoss() bool {
	w := &s.state.Wave
	if w.BossSpawned {
		return false
	}
	if w.NonBossSpawned == 0 {
		return false
	}
	if w.NonBossDefeated < w.NonBossSpawned {
		return false
	}

	s.SpawnEnemy(types.EnemyBoss, s.state.Layout.EnemyGate)
	w.BossSpawned = true
	s.state.ShowMessage("Boss entering!", 2.0)
	s.state.Cue(event.CueBoss)
	log.Printf("[Spawner] Boss spawned for wave %d", w.Current)
	return true
}

// TrySpawnRogue 开关打开时按概率生成流氓机器人
func (s *Spawner) TrySpawnRogue() bool {
	if !s.state.RogueEnabled || s.state.RogueAlive() {
		return false
	}
	stats := s.state.Data.Enemies.Rogue
	if s.state.Rand.Float64() > stats.SpawnChance {
		return false
	}

	pos := s.state.Layout.RandomSpawnPosition(s.state.Rand)
	s.state.RogueID = entities.NewRogueEntity(s.state.EntityManager, stats, pos)
	s.state.ShowMessage("Rogue bot entered!", 2.0)
	log.Printf("[Spawner] Rogue spawned at (%.1f, %.1f)", pos.X, pos.Z)
	return true
}

// SpawnPowerup 在随机位置生成一个随机道具，达到上限时不生成
func (s *Spawner) SpawnPowerup() (ecs.EntityID, bool) {
	tuning := s.state.Gameplay().Powerup
	if s.countPowerups() >= tuning.MaxActive {
		return ecs.InvalidEntity, false
	}
	defs := s.state.Data.Powerups.Powerups
	if len(defs) == 0 {
		return ecs.InvalidEntity, false
	}

	def := defs[s.state.Rand.Intn(len(defs))]
	pos := s.state.Layout.RandomSpawnPosition(s.state.Rand)
	return entities.NewPowerupEntity(s.state.EntityManager, def, pos, tuning.Lifetime), true
}

func (s *Spawner) countPowerups() int {
	n := 0
	for _, id := range powerupEntities(s.state) {
		if !s.state.EntityManager.IsMarkedForDestroy(id) {
			n++
		}
	}
	return n
}
