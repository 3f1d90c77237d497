package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/entities"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// testWorld 测试用的完整系统组合，接线方式与 ArenaScene 一致
type testWorld struct {
	state       *game.SimulationState
	spawner     *Spawner
	buffs       *BuffSystem
	combat      *CombatSystem
	player      *PlayerSystem
	enemies     *EnemyAISystem
	rogue       *RogueSystem
	projectiles *ProjectileSystem
	spears      *SpearSystem
	bombs       *BombSystem
	powerups    *PowerupSystem
	waves       *WaveSystem
	armory      *ArmorySystem
	lobby       *LobbySystem
	hud         *HUDSystem
}

func loadTestData(t *testing.T) *config.GameData {
	t.Helper()
	data, err := config.LoadGameData("../../data")
	if err != nil {
		t.Fatalf("failed to load game data: %v", err)
	}
	return data
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	data := loadTestData(t)
	state := game.NewSimulationState(data, rand.New(rand.NewSource(42)))

	playerID, err := entities.NewPlayerEntity(state.EntityManager, data, state.Layout.PlayerSpawn)
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	state.PlayerID = playerID
	fixtures := entities.NewLobbyFixtures(state.EntityManager, state.Layout.LobbyOrigin, state.Layout.StartWave, data.Gameplay.Lobby)
	state.DummyID = fixtures.Dummy
	state.Running = true

	w := &testWorld{state: state}
	w.spawner = NewSpawner(state)
	w.buffs = NewBuffSystem(state)
	w.combat = NewCombatSystem(state, w.spawner, w.buffs)
	w.player = NewPlayerSystem(state, w.combat)
	w.enemies = NewEnemyAISystem(state, w.combat)
	w.rogue = NewRogueSystem(state, w.combat)
	w.projectiles = NewProjectileSystem(state, w.combat)
	w.spears = NewSpearSystem(state, w.combat, w.projectiles)
	w.bombs = NewBombSystem(state, w.combat)
	w.powerups = NewPowerupSystem(state, w.spawner, w.buffs)
	w.waves = NewWaveSystem(state, w.spawner, w.combat, w.buffs)
	w.armory = NewArmorySystem(state, w.waves)
	w.lobby = NewLobbySystem(state, w.armory)
	w.hud = NewHUDSystem(state)
	return w
}

// recordEvents 记录指定类型的事件
func recordEvents(state *game.SimulationState, kinds ...event.EventType) *[]event.Event {
	var got []event.Event
	listener := event.ListenerFunc(func(e event.Event) {
		got = append(got, e)
	})
	state.Events.SubscribeAll(listener, kinds...)
	return &got
}

func (w *testWorld) playerComponent(t *testing.T) *components.PlayerComponent {
	t.Helper()
	player, ok := w.state.Player()
	if !ok {
		t.Fatal("player component missing")
	}
	return player
}

func (w *testWorld) playerHealth(t *testing.T) *components.HealthComponent {
	t.Helper()
	return w.health(t, w.state.PlayerID)
}

func (w *testWorld) health(t *testing.T, id ecs.EntityID) *components.HealthComponent {
	t.Helper()
	health, ok := ecs.GetComponent[*components.HealthComponent](w.state.EntityManager, id)
	if !ok {
		t.Fatalf("entity %d has no health", id)
	}
	return health
}

func (w *testWorld) setPlayerPosition(p types.Vec3) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.state.EntityManager, w.state.PlayerID)
	pos.Position = p
}

// defeat 把敌人生命值归零并结算击败
func (w *testWorld) defeat(id ecs.EntityID) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](w.state.EntityManager, id)
	if !ok {
		return false
	}
	health.Current = 0
	return w.combat.DefeatEnemy(id)
}

// countBySize 统计存活敌人按体型的数量
func (w *testWorld) countBySize() map[types.EnemySize]int {
	counts := make(map[types.EnemySize]int)
	for _, id := range w.state.LiveEnemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.state.EntityManager, id)
		counts[enemy.Size]++
	}
	return counts
}

// defeatNonBoss 击败所有存活的非首领敌人
func (w *testWorld) defeatNonBoss() {
	for _, id := range w.state.LiveEnemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.state.EntityManager, id)
		if !enemy.IsBoss {
			w.defeat(id)
		}
	}
}

func (w *testWorld) spawnRogue(pos types.Vec3) ecs.EntityID {
	return entities.NewRogueEntity(w.state.EntityManager, w.state.Data.Enemies.Rogue, pos)
}

// placePowerup 在指定位置放置指定道具，不经过刷新上限
func (w *testWorld) placePowerup(def config.PowerupDef, pos types.Vec3) ecs.EntityID {
	return entities.NewPowerupEntity(w.state.EntityManager, def, pos, w.state.Gameplay().Powerup.Lifetime)
}

func mustPowerup(t *testing.T, w *testWorld, id string) config.PowerupDef {
	t.Helper()
	def, ok := w.state.Data.Powerups.Get(id)
	if !ok {
		t.Fatalf("powerup %q not configured", id)
	}
	return def
}
