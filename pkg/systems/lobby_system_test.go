package systems

import (
	"testing"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/types"
)

func TestTryUpgradeActiveWeapon(t *testing.T) {
	t.Run("积分不足", func(t *testing.T) {
		w := newTestWorld(t)
		if w.lobby.TryUpgradeActiveWeapon() {
			t.Fatal("upgrade succeeded without points")
		}
		if w.state.Message != "Not enough points" {
			t.Errorf("message = %q", w.state.Message)
		}
	})

	t.Run("升级成功", func(t *testing.T) {
		w := newTestWorld(t)
		player := w.playerComponent(t)
		player.Points = 100
		if !w.lobby.TryUpgradeActiveWeapon() {
			t.Fatal("upgrade failed")
		}
		if player.LevelOf("sword") != 2 || player.Points != 70 {
			t.Errorf("level=%d points=%d", player.LevelOf("sword"), player.Points)
		}
		if w.state.Message != "Sword upgraded to Lv 2" {
			t.Errorf("message = %q", w.state.Message)
		}
	})

	t.Run("已满级", func(t *testing.T) {
		w := newTestWorld(t)
		player := w.playerComponent(t)
		player.Points = 1000
		player.WeaponLevels["sword"] = 3
		if w.lobby.TryUpgradeActiveWeapon() {
			t.Fatal("upgraded past max level")
		}
		if w.state.Message != "Weapon already maxed" || player.Points != 1000 {
			t.Errorf("message=%q points=%d", w.state.Message, player.Points)
		}
	})

	t.Run("只升级当前槽位", func(t *testing.T) {
		w := newTestWorld(t)
		player := w.playerComponent(t)
		player.Points = 100
		player.ActiveSlot = types.SlotSecondary
		w.lobby.TryUpgradeActiveWeapon()
		if player.LevelOf("bow") != 2 || player.LevelOf("sword") != 1 {
			t.Errorf("levels = %v", player.WeaponLevels)
		}
	})
}

func TestLobbyStations(t *testing.T) {
	t.Run("波次进行中无效", func(t *testing.T) {
		w := newTestWorld(t)
		pad, _ := fixtureOfKind(w.state, components.FixtureUpgradePad)
		pos, _ := w.state.PositionOf(pad)
		w.setPlayerPosition(pos)
		w.lobby.Update(true)
		if w.state.Message != "" {
			t.Errorf("station responded during a wave: %q", w.state.Message)
		}
	})

	t.Run("换装台打开军械库", func(t *testing.T) {
		w := newTestWorld(t)
		w.state.Wave.Complete = true
		events := recordEvents(w.state, event.EventArmoryOpen)
		pad, _ := fixtureOfKind(w.state, components.FixtureSwitchPad)
		pos, _ := w.state.PositionOf(pad)
		w.setPlayerPosition(pos)

		w.lobby.Update(false)
		if w.state.Message != "Press F to switch weapons" || w.armory.IsOpen() {
			t.Fatalf("prompt=%q open=%v", w.state.Message, w.armory.IsOpen())
		}
		w.lobby.Update(true)
		if w.state.Armory != event.ArmoryPrimary {
			t.Errorf("armory stage = %v", w.state.Armory)
		}
		if len(*events) != 1 {
			t.Fatalf("armory events = %d", len(*events))
		}
		payload := (*events)[0].Data.(event.ArmoryPayload)
		for _, id := range payload.Options {
			if id == "punch" {
				t.Error("punch offered in the armory")
			}
		}
	})

	t.Run("返回传送门", func(t *testing.T) {
		w := newTestWorld(t)
		w.state.Wave.Complete = true
		portal, _ := fixtureOfKind(w.state, components.FixtureReturnPortal)
		pos, _ := w.state.PositionOf(portal)
		w.setPlayerPosition(pos)

		w.lobby.Update(true)
		if w.state.PlayerPosition() != w.state.Layout.PlayerSpawn {
			t.Error("player not teleported to spawn")
		}
		if w.state.Wave.NextWaveCountdown != 3 || !w.state.Wave.WaveStartQueued {
			t.Errorf("countdown=%v queued=%v", w.state.Wave.NextWaveCountdown, w.state.Wave.WaveStartQueued)
		}
		if w.state.Message != "Returning to arena..." {
			t.Errorf("message = %q", w.state.Message)
		}
	})
}

func TestArmoryFlow(t *testing.T) {
	w := newTestWorld(t)
	w.state.Running = false
	player := w.playerComponent(t)
	w.armory.Open()

	if !w.armory.Select("hammer") {
		t.Fatal("hammer rejected")
	}
	if player.PrimaryWeapon != "hammer" {
		t.Errorf("primary = %q", player.PrimaryWeapon)
	}
	if w.armory.Select("punch") || w.armory.Select("laser") {
		t.Error("invalid weapon accepted")
	}

	w.armory.Confirm()
	if w.state.Armory != event.ArmorySecondary {
		t.Fatalf("stage = %v", w.state.Armory)
	}
	// 选择主武器槽位上的武器时两个槽位互换
	w.armory.Select("hammer")
	if player.PrimaryWeapon != "bow" || player.SecondaryWeapon != "hammer" {
		t.Errorf("slots = %q / %q after swap", player.PrimaryWeapon, player.SecondaryWeapon)
	}

	w.armory.Back()
	if w.state.Armory != event.ArmoryPrimary {
		t.Errorf("stage after back = %v", w.state.Armory)
	}
	w.armory.Confirm()
	w.armory.Select("shield")
	w.armory.Confirm()

	if w.armory.IsOpen() {
		t.Error("armory still open")
	}
	if !w.state.Running || w.state.Wave.Current != 1 || w.state.Wave.Spawned == 0 {
		t.Errorf("wave did not start: running=%v wave=%+v", w.state.Running, w.state.Wave)
	}
	if player.PrimaryWeapon != "bow" || player.SecondaryWeapon != "shield" {
		t.Errorf("loadout = %q / %q", player.PrimaryWeapon, player.SecondaryWeapon)
	}
}
