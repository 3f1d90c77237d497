package systems

import (
	"math"
	"testing"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/types"
)

func TestDamagePlayerBlock(t *testing.T) {
	tests := []struct {
		name   string
		weapon string
		block  float64
		shield bool
		want   float64
	}{
		{"格挡一半", "shield", 0.5, false, 90},
		{"格挡加护盾", "shield", 0.5, true, 94},
		{"非防御武器不格挡", "sword", 0.5, true, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			w.state.Data.Weapons.Get("shield").Levels[0].Block = tt.block
			player := w.playerComponent(t)
			player.PrimaryWeapon = tt.weapon
			player.ShieldHeld = tt.shield

			w.combat.DamagePlayer(20)

			if got := w.playerHealth(t).Current; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("health = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDamagePlayerDefenseMultiplier(t *testing.T) {
	w := newTestWorld(t)
	_, mods := w.combat.playerModifiers()
	mods.Defense = 1.15

	w.combat.DamagePlayer(20)
	if got := w.playerHealth(t).Current; math.Abs(got-77) > 1e-9 {
		t.Errorf("health = %v, want 77", got)
	}
}

func TestPlayerDeath(t *testing.T) {
	w := newTestWorld(t)
	events := recordEvents(w.state, event.EventGameOver, event.EventPose)
	w.buffs.Apply(mustPowerup(t, w, "frost"))

	w.combat.DamagePlayer(150)

	if !w.state.PlayerDead || w.state.Running {
		t.Fatal("player death did not stop the simulation")
	}
	if !w.playerComponent(t).IsDead {
		t.Error("player component not marked dead")
	}
	buffs, _ := w.combat.playerModifiers()
	if buffs.Frost != 0 {
		t.Error("buffs not cleared on death")
	}
	if w.state.Message != "You were destroyed!" {
		t.Errorf("message = %q", w.state.Message)
	}
	gameOver := 0
	for _, e := range *events {
		if e.Type == event.EventGameOver {
			gameOver++
		}
	}
	if gameOver != 1 {
		t.Errorf("game over events = %d, want 1", gameOver)
	}

	// 死亡后再次受伤不会重复结算
	w.combat.DamagePlayer(10)
	gameOver = 0
	for _, e := range *events {
		if e.Type == event.EventGameOver {
			gameOver++
		}
	}
	if gameOver != 1 {
		t.Errorf("game over emitted again: %d", gameOver)
	}
}

func TestResetPlayer(t *testing.T) {
	w := newTestWorld(t)
	w.setPlayerPosition(types.V(4, 4))
	w.combat.DamagePlayer(200)
	w.combat.ResetPlayer()

	if w.state.PlayerDead || w.playerComponent(t).IsDead {
		t.Error("player still dead")
	}
	if w.playerHealth(t).Current != 100 {
		t.Errorf("health = %v", w.playerHealth(t).Current)
	}
	if w.state.PlayerPosition() != w.state.Layout.PlayerSpawn {
		t.Error("player not at spawn")
	}
	pose, _ := ecs.GetComponent[*components.PoseComponent](w.state.EntityManager, w.state.PlayerID)
	if pose.Pose != components.PoseUpright {
		t.Errorf("pose = %v", pose.Pose)
	}
}

func TestApplyWeaponDamage(t *testing.T) {
	t.Run("基础伤害乘以倍率", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawner.SpawnEnemy(types.EnemyMedium, types.V(2, 0))
		_, mods := w.combat.playerModifiers()
		mods.Damage = 1.5
		w.combat.ApplyWeaponDamage(id, w.state.Data.Weapons.Get("sword").Level(1))
		if got := w.health(t, id).Current; got != 70-18 {
			t.Errorf("health = %v, want 52", got)
		}
	})

	t.Run("龙卷风直接击败", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(2, 0))
		buffs, _ := w.combat.playerModifiers()
		buffs.Tornado = 5
		w.combat.ApplyWeaponDamage(id, w.state.Data.Weapons.Get("punch").Level(1))
		if w.state.IsLiveEnemy(id) {
			t.Error("enemy survived a tornado hit")
		}
		if w.state.Wave.Defeated != 1 {
			t.Errorf("Defeated = %d", w.state.Wave.Defeated)
		}
	})

	t.Run("元素增益施加状态", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(2, 0))
		buffs, _ := w.combat.playerModifiers()
		buffs.Frost = 1
		buffs.Flame = 1
		buffs.Oil = 1
		w.combat.ApplyWeaponDamage(id, w.state.Data.Weapons.Get("sword").Level(1))
		status, _ := ecs.GetComponent[*components.StatusEffectComponent](w.state.EntityManager, id)
		if status.Freeze != 5 || status.Burn != 5 || status.Slow != 4 {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("武器燃烧和缴械", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(2, 0))
		w.combat.ApplyWeaponDamage(id, w.state.Data.Weapons.Get("sword").Level(3))
		status, _ := ecs.GetComponent[*components.StatusEffectComponent](w.state.EntityManager, id)
		if status.Slow != 3 {
			t.Errorf("slow = %v, want 3 from disarm", status.Slow)
		}
	})

	t.Run("连锁电击", func(t *testing.T) {
		w := newTestWorld(t)
		primary := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(0, -5))
		near := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(2, -5))
		far := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(10, -5))
		w.combat.ApplyWeaponDamage(primary, w.state.Data.Weapons.Get("bow").Level(3))
		if got := w.health(t, primary).Current; got != 110-14 {
			t.Errorf("primary health = %v", got)
		}
		if got := w.health(t, near).Current; got != 110-8 {
			t.Errorf("near health = %v, want 102", got)
		}
		if got := w.health(t, far).Current; got != 110 {
			t.Errorf("far health = %v, want untouched", got)
		}
	})

	t.Run("溅射", func(t *testing.T) {
		w := newTestWorld(t)
		primary := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(0, -5))
		near := w.spawner.SpawnEnemy(types.EnemyLarge, types.V(3, -5))
		w.combat.ApplyWeaponDamage(primary, w.state.Data.Weapons.Get("hammer").Level(3))
		// 主目标 26 + 溅射 13
		if got := w.health(t, primary).Current; got != 110-26-13 {
			t.Errorf("primary health = %v", got)
		}
		if got := w.health(t, near).Current; got != 110-13 {
			t.Errorf("near health = %v", got)
		}
	})

	t.Run("训练假人只闪烁", func(t *testing.T) {
		w := newTestWorld(t)
		w.combat.ApplyWeaponDamage(w.state.DummyID, w.state.Data.Weapons.Get("sword").Level(1))
		if !ecs.HasComponent[*components.FlashEffectComponent](w.state.EntityManager, w.state.DummyID) {
			t.Error("dummy did not flash")
		}
		w.state.Scheduler.Advance(0.2)
		if ecs.HasComponent[*components.FlashEffectComponent](w.state.EntityManager, w.state.DummyID) {
			t.Error("flash not reverted")
		}
	})
}

func TestDefeatEnemyOnce(t *testing.T) {
	w := newTestWorld(t)
	id := w.spawner.SpawnEnemy(types.EnemySmall, types.V(2, 0))
	if !w.defeat(id) {
		t.Fatal("first defeat not settled")
	}
	if w.defeat(id) {
		t.Error("second defeat settled again")
	}
	if w.playerComponent(t).Points != 5 {
		t.Errorf("points = %d, want 5", w.playerComponent(t).Points)
	}
	if w.state.Wave.Defeated != 1 || w.state.Wave.NonBossDefeated != 1 {
		t.Errorf("counters = %+v", w.state.Wave)
	}
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](w.state.EntityManager, id)
	if !ok || lifetime.Window != 0.6 {
		t.Error("defeated enemy has no death window")
	}
}

func TestRogueDamage(t *testing.T) {
	w := newTestWorld(t)
	w.state.RogueID = w.spawnRogue(types.V(3, 0))

	w.combat.DamageRogue(w.state.Data.Weapons.Get("sword").Level(1))
	if got := w.health(t, w.state.RogueID).Current; got != 148 {
		t.Errorf("rogue health = %v, want 148", got)
	}

	w.combat.HitRogue(1000)
	if w.state.RogueAlive() {
		t.Error("rogue survived")
	}
	if w.state.RogueID != ecs.InvalidEntity {
		t.Error("rogue id not cleared")
	}
	if w.state.Message != "Rogue defeated!" {
		t.Errorf("message = %q", w.state.Message)
	}
}
