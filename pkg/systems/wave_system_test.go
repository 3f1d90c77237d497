package systems

import (
	"testing"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

func TestBatchCounts(t *testing.T) {
	for n := 1; n <= 20; n++ {
		small, medium, large := BatchCounts(n)
		want := (2 + n) + (1 + n/2) + n/3
		if got := small + medium + large; got != want {
			t.Errorf("wave %d: total=%d, want %d", n, got, want)
		}
		if small != 2+n || medium != 1+n/2 || large != n/3 {
			t.Errorf("wave %d: got %d/%d/%d", n, small, medium, large)
		}
	}
}

func TestStartWaveSpawnsBatch(t *testing.T) {
	for n := 1; n <= 20; n++ {
		w := newTestWorld(t)
		w.waves.StartWave(n)
		small, medium, large := BatchCounts(n)
		if w.state.Wave.Spawned != small+medium+large {
			t.Errorf("wave %d: Spawned=%d, want %d", n, w.state.Wave.Spawned, small+medium+large)
		}
		if len(w.state.LiveEnemies()) != small+medium+large {
			t.Errorf("wave %d: live enemies=%d", n, len(w.state.LiveEnemies()))
		}
		if w.state.Wave.BossSpawned {
			t.Errorf("wave %d: boss spawned at wave start", n)
		}
	}
}

func TestWaveOneScenario(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)

	counts := w.countBySize()
	if counts[types.EnemySmall] != 3 || counts[types.EnemyMedium] != 1 || counts[types.EnemyLarge] != 0 {
		t.Fatalf("wave 1 composition = %v, want 3 small, 1 medium, 0 large", counts)
	}
	if w.state.Wave.Phase != game.PhaseWaveStarting {
		t.Errorf("phase = %v, want wave_starting", w.state.Wave.Phase)
	}

	live := w.state.LiveEnemies()
	for i, id := range live {
		w.defeat(id)
		if i < len(live)-1 && w.state.Wave.BossSpawned {
			t.Fatalf("boss spawned after %d of %d defeats", i+1, len(live))
		}
	}
	if !w.state.Wave.BossSpawned {
		t.Fatal("boss not spawned after all non-boss enemies defeated")
	}

	bossID, ok := w.state.LiveBoss()
	if !ok {
		t.Fatal("no live boss")
	}
	if h := w.health(t, bossID); h.Current != 220 {
		t.Errorf("boss health = %v, want 220", h.Current)
	}
	boss, _ := ecs.GetComponent[*components.EnemyComponent](w.state.EntityManager, bossID)
	if boss.Damage != 18 {
		t.Errorf("boss damage = %v, want 18", boss.Damage)
	}
	if w.state.Message != "Boss entering!" {
		t.Errorf("message = %q", w.state.Message)
	}
}

func TestBossSpawnsOncePerWave(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(2)
	w.defeatNonBoss()
	if !w.state.Wave.BossSpawned {
		t.Fatal("boss not spawned")
	}

	// 额外的非首领敌人被击败不会生成第二个首领
	extra := w.spawner.SpawnEnemy(types.EnemySmall, types.V(3, 3))
	w.defeat(extra)

	bosses := 0
	for _, id := range w.state.Enemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.state.EntityManager, id)
		if enemy.IsBoss {
			bosses++
		}
	}
	if bosses != 1 {
		t.Errorf("bosses = %d, want 1", bosses)
	}
}

func TestBossGateRequiresSpawnedNonBoss(t *testing.T) {
	w := newTestWorld(t)
	if w.spawner.TrySpawnBoss() {
		t.Error("boss spawned with nothing spawned")
	}
	id := w.spawner.SpawnEnemy(types.EnemySmall, types.V(0, 0))
	if w.spawner.TrySpawnBoss() {
		t.Error("boss spawned while a non-boss enemy is alive")
	}
	w.defeat(id)
	if !w.state.Wave.BossSpawned {
		t.Error("boss not spawned after the only non-boss enemy was defeated")
	}
}

func TestCompletionGuards(t *testing.T) {
	t.Run("首领未生成", func(t *testing.T) {
		w := newTestWorld(t)
		w.waves.StartWave(1)
		w.waves.Tick(5)
		if w.waves.CheckCompletion() {
			t.Error("completed before boss spawned")
		}
	})

	t.Run("首领存活", func(t *testing.T) {
		w := newTestWorld(t)
		w.waves.StartWave(1)
		w.defeatNonBoss()
		w.waves.Tick(5)
		if w.waves.CheckCompletion() {
			t.Error("completed with a live boss")
		}
	})

	t.Run("宽限期内", func(t *testing.T) {
		w := newTestWorld(t)
		w.waves.StartWave(1)
		w.defeatNonBoss()
		bossID, _ := w.state.LiveBoss()
		w.defeat(bossID)
		w.state.Wave.Elapsed = 5
		if w.waves.CheckCompletion() {
			t.Error("completed during start grace")
		}
	})

	t.Run("时长不足", func(t *testing.T) {
		w := newTestWorld(t)
		w.waves.StartWave(1)
		w.defeatNonBoss()
		bossID, _ := w.state.LiveBoss()
		w.defeat(bossID)
		w.waves.Tick(1.25)
		if w.waves.CheckCompletion() {
			t.Error("completed before minimum elapsed time")
		}
	})

	t.Run("全部满足", func(t *testing.T) {
		w := newTestWorld(t)
		w.waves.StartWave(1)
		w.playerHealth(t).Current = 30
		events := recordEvents(w.state, event.EventAudioCue)

		w.defeatNonBoss()
		bossID, _ := w.state.LiveBoss()
		w.defeat(bossID)
		w.waves.Tick(2)
		if !w.waves.CheckCompletion() {
			t.Fatal("wave did not complete")
		}
		ws := w.state.Wave
		if !ws.Complete || ws.Pending != 2 || ws.Phase != game.PhaseWaveComplete {
			t.Errorf("wave state after completion = %+v", ws)
		}
		if w.playerHealth(t).Current != 100 {
			t.Errorf("player health = %v, want restored to 100", w.playerHealth(t).Current)
		}
		if w.state.Message != "Wave 1 complete!" {
			t.Errorf("message = %q", w.state.Message)
		}
		found := false
		for _, e := range *events {
			if e.Data.(event.AudioCuePayload).Cue == event.CueWaveComplete {
				found = true
			}
		}
		if !found {
			t.Error("wave complete cue not emitted")
		}
		if w.waves.CheckCompletion() {
			t.Error("completion fired twice")
		}
	})
}

func TestWaveStartsActiveAfterGrace(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	w.waves.Tick(0.5)
	if w.state.Wave.Phase != game.PhaseWaveStarting {
		t.Errorf("phase = %v during grace", w.state.Wave.Phase)
	}
	w.waves.Tick(1)
	if w.state.Wave.Phase != game.PhaseWaveActive {
		t.Errorf("phase = %v after grace", w.state.Wave.Phase)
	}
	if w.state.Wave.StartGrace != 0 {
		t.Errorf("grace = %v, want 0", w.state.Wave.StartGrace)
	}
}

func TestWatchdogReissuesBatch(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	game.DestroyAll[*components.EnemyComponent](w.state.EntityManager)
	w.state.Wave.Spawned = 0
	w.state.Wave.NonBossSpawned = 0

	w.waves.Tick(1.5)
	if w.state.Wave.Spawned != 0 {
		t.Fatal("watchdog fired too early")
	}
	w.waves.Tick(1)
	if w.state.Wave.Spawned != 4 {
		t.Errorf("Spawned = %d after watchdog, want 4", w.state.Wave.Spawned)
	}
}

func TestStartWaveResetsState(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	player := w.playerComponent(t)
	player.SpearAmmo = 0
	player.BombAmmo = 1
	player.ActiveSlot = types.SlotSecondary
	player.AttackCooldown = 0.4
	w.combat.FireArrow(w.state.Data.Weapons.Get("bow").Level(1), false, false)
	w.buffs.Apply(mustPowerup(t, w, "tornado"))
	w.setPlayerPosition(types.V(5, 5))

	w.waves.StartWave(3)

	if player.SpearAmmo != 3 || player.BombAmmo != w.state.Data.Weapons.BombCap() {
		t.Errorf("ammo = %d/%d after wave start", player.SpearAmmo, player.BombAmmo)
	}
	if player.ActiveSlot != types.SlotPrimary || player.AttackCooldown != 0 {
		t.Errorf("slot=%v cooldown=%v", player.ActiveSlot, player.AttackCooldown)
	}
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](w.state.EntityManager)); n != 0 {
		t.Errorf("%d projectiles survived wave start", n)
	}
	buffs, _ := w.combat.playerModifiers()
	if buffs.Any() {
		t.Errorf("buffs survived wave start: %+v", buffs)
	}
	if w.state.PlayerPosition() != w.state.Layout.PlayerSpawn {
		t.Errorf("player at %+v, want spawn", w.state.PlayerPosition())
	}
	if w.state.Wave.Current != 3 || w.state.Wave.Pending != 3 {
		t.Errorf("current/pending = %d/%d", w.state.Wave.Current, w.state.Wave.Pending)
	}
	if w.state.Message != "Wave 3 starting..." {
		t.Errorf("message = %q", w.state.Message)
	}

	w.state.Scheduler.Advance(1.5)
	if w.state.Message != "Enemies entering..." {
		t.Errorf("intro message = %q", w.state.Message)
	}
}

func TestStartWaveResetsDeadPlayer(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	w.combat.DamagePlayer(500)
	if !w.state.PlayerDead || w.state.Running {
		t.Fatal("player should be dead and simulation stopped")
	}

	w.waves.StartWave(1)
	if w.state.PlayerDead || !w.state.Running {
		t.Error("wave start did not revive the player")
	}
	if w.playerHealth(t).Current != 100 {
		t.Errorf("health = %v, want 100", w.playerHealth(t).Current)
	}
}

func TestNextWaveAfterPadCountdown(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	w.defeatNonBoss()
	bossID, _ := w.state.LiveBoss()
	w.defeat(bossID)
	w.waves.Tick(2)
	if !w.waves.CheckCompletion() {
		t.Fatal("wave 1 did not complete")
	}
	w.playerComponent(t).SpearAmmo = 1
	w.combat.FireArrow(w.state.Data.Weapons.Get("bow").Level(1), false, false)

	w.setPlayerPosition(w.state.Layout.StartWave)
	const dt = 0.1
	frames := 0
	for w.state.Wave.Current == 1 && frames < 50 {
		w.waves.UpdatePad()
		w.waves.UpdateCountdown(dt)
		frames++
	}

	if w.state.Wave.Current != 2 {
		t.Fatal("next wave never started")
	}
	if elapsed := float64(frames) * dt; elapsed < 2.9 || elapsed > 3.2 {
		t.Errorf("next wave started after %.1fs, want 3s", elapsed)
	}
	if w.state.Wave.Complete || w.state.Wave.WaveStartQueued {
		t.Error("wave flags not reset")
	}
	if w.playerComponent(t).SpearAmmo != 3 {
		t.Errorf("spear ammo = %d, want 3", w.playerComponent(t).SpearAmmo)
	}
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](w.state.EntityManager)); n != 0 {
		t.Errorf("%d projectiles survived", n)
	}
	if w.state.Wave.Spawned != 6 {
		t.Errorf("wave 2 spawned %d, want 6", w.state.Wave.Spawned)
	}
}

func TestPadCountdownCancelledWhenLeaving(t *testing.T) {
	w := newTestWorld(t)
	w.state.Wave.Complete = true
	w.setPlayerPosition(w.state.Layout.StartWave)

	w.waves.UpdatePad()
	w.waves.UpdateCountdown(1)
	if w.state.Wave.NextWaveCountdown != 2 || !w.state.Wave.WaveStartQueued {
		t.Fatalf("countdown = %v queued=%v", w.state.Wave.NextWaveCountdown, w.state.Wave.WaveStartQueued)
	}
	if w.state.Message != "Next wave in 2..." {
		t.Errorf("message = %q", w.state.Message)
	}

	w.setPlayerPosition(types.V(10, 0))
	w.waves.UpdatePad()
	if w.state.Wave.NextWaveCountdown != 0 || w.state.Wave.WaveStartQueued {
		t.Error("leaving the pad did not cancel the countdown")
	}
}

func TestPadInactiveWhileWaveRunning(t *testing.T) {
	w := newTestWorld(t)
	w.waves.StartWave(1)
	w.setPlayerPosition(w.state.Layout.StartWave)
	w.waves.UpdatePad()
	if w.state.Wave.NextWaveCountdown != 0 {
		t.Error("pad started a countdown during an active wave")
	}
}

func TestGateMessages(t *testing.T) {
	w := newTestWorld(t)
	w.setPlayerPosition(w.state.Layout.SouthGate)
	w.waves.UpdateGateMessages()
	if w.state.Message != "Plasma shield active" {
		t.Errorf("message = %q", w.state.Message)
	}
	w.state.Wave.Complete = true
	w.waves.UpdateGateMessages()
	if w.state.Message != "Gate open to Armory Lobby" {
		t.Errorf("message = %q", w.state.Message)
	}
}

func TestMapChangeShiftsLobbyFixtures(t *testing.T) {
	w := newTestWorld(t)
	upgrade, _ := fixtureOfKind(w.state, components.FixtureUpgradePad)
	before, _ := w.state.PositionOf(upgrade)
	oldOrigin := w.state.Layout.LobbyOrigin

	w.waves.StartWave(6)

	after, _ := w.state.PositionOf(upgrade)
	delta := w.state.Layout.LobbyOrigin.Sub(oldOrigin)
	if delta.LengthSq() == 0 {
		t.Fatal("lobby origin did not move for the larger map")
	}
	if got := after.Sub(before); got.Sub(delta).Length() > 1e-9 {
		t.Errorf("fixture moved by %+v, want %+v", got, delta)
	}
	pad, _ := fixtureOfKind(w.state, components.FixtureNextWavePad)
	if pos, _ := w.state.PositionOf(pad); pos != w.state.Layout.StartWave {
		t.Errorf("pad at %+v", pos)
	}
}
