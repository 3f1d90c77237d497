package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/blockbattle/pkg/types"
)

const testWeaponsYAML = `
weapons:
  - id: sword
    name: Sword
    category: melee
    levels:
      - { label: Standard, damage: 12, range: 3.2, cooldown: 0.5, speed: 1.0 }
      - { label: Fire, damage: 16, range: 3.2, cooldown: 0.5, speed: 1.05, burn: 4 }
      - { label: Laser, damage: 20, range: 3.4, cooldown: 0.45, speed: 1.1, disarm: 3 }
    upgradeCosts: [0, 30, 60]
  - id: bombs
    name: Bombs
    category: bomb
    maxActive: 3
    levels:
      - { label: Standard, damage: 22, range: 3.0, cooldown: 3.0, speed: 0.8, radius: 3.0 }
    upgradeCosts: [0]
  - id: punch
    name: Punch
    category: melee
    fixedCosts: true
    levels:
      - { label: Default, damage: 6, range: 1.8, cooldown: 0.4, speed: 1.0 }
    upgradeCosts: [0]
`

func TestLoadWeapons(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("加载有效配置文件", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "weapons.yaml")
		if err := os.WriteFile(configPath, []byte(testWeaponsYAML), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		config, err := LoadWeapons(configPath)
		if err != nil {
			t.Fatalf("LoadWeapons failed: %v", err)
		}

		if len(config.Weapons) != 3 {
			t.Fatalf("Expected 3 weapons, got %d", len(config.Weapons))
		}
		sword := config.Get("sword")
		if sword.MaxLevel() != 3 {
			t.Errorf("sword max level: expected 3, got %d", sword.MaxLevel())
		}
		if sword.Level(2).Burn != 4 {
			t.Errorf("sword level 2 burn: expected 4, got %v", sword.Level(2).Burn)
		}
		if config.BombCap() != 3 {
			t.Errorf("BombCap: expected 3, got %d", config.BombCap())
		}
		if config.BombWeaponID() != "bombs" {
			t.Errorf("BombWeaponID: expected bombs, got %q", config.BombWeaponID())
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadWeapons(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("缺少 punch", func(t *testing.T) {
		content := `
weapons:
  - id: sword
    name: Sword
    category: melee
    levels:
      - { damage: 12 }
    upgradeCosts: [0]
`
		if _, err := ParseWeapons([]byte(content)); err == nil {
			t.Error("Expected error when punch is missing")
		}
	})

	t.Run("格挡比例越界", func(t *testing.T) {
		content := `
weapons:
  - id: shield
    name: Shield
    category: defense
    levels:
      - { damage: 6, block: 1.35 }
    upgradeCosts: [0]
  - id: punch
    name: Punch
    category: melee
    levels:
      - { damage: 6 }
    upgradeCosts: [0]
`
		if _, err := ParseWeapons([]byte(content)); err == nil {
			t.Error("Expected error for block >= 1")
		}
	})

	t.Run("未知类别", func(t *testing.T) {
		content := `
weapons:
  - id: punch
    name: Punch
    category: laser
    levels:
      - { damage: 6 }
    upgradeCosts: [0]
`
		if _, err := ParseWeapons([]byte(content)); err == nil {
			t.Error("Expected error for unknown category")
		}
	})
}

func TestWeaponLevelClamp(t *testing.T) {
	config, err := ParseWeapons([]byte(testWeaponsYAML))
	if err != nil {
		t.Fatalf("ParseWeapons failed: %v", err)
	}
	sword := config.Get("sword")

	tests := []struct {
		level int
		label string
	}{
		{-1, "Standard"},
		{0, "Standard"},
		{1, "Standard"},
		{3, "Laser"},
		{9, "Laser"},
	}
	for _, tt := range tests {
		if got := sword.Level(tt.level).Label; got != tt.label {
			t.Errorf("Level(%d): expected %s, got %s", tt.level, tt.label, got)
		}
	}
}

func TestWeaponsGetFallback(t *testing.T) {
	config, err := ParseWeapons([]byte(testWeaponsYAML))
	if err != nil {
		t.Fatalf("ParseWeapons failed: %v", err)
	}
	if got := config.Get("rocket").ID; got != FallbackWeaponID {
		t.Errorf("Get(unknown): expected %s, got %s", FallbackWeaponID, got)
	}
	if config.Has("rocket") {
		t.Error("Has(rocket) should be false")
	}
}

func TestSeedUpgradeCosts(t *testing.T) {
	config, err := ParseWeapons([]byte(testWeaponsYAML))
	if err != nil {
		t.Fatalf("ParseWeapons failed: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		config.SeedUpgradeCosts(rng)
		costs := config.Get("sword").UpgradeCosts
		if costs[0] < 5 || costs[0] > 20 || costs[0]%5 != 0 {
			t.Fatalf("L1 cost out of range: %d", costs[0])
		}
		if costs[1] < 25 || costs[1] > 60 || costs[1]%5 != 0 {
			t.Fatalf("L2 cost out of range: %d", costs[1])
		}
		if costs[2] < 60 || costs[2] > 120 || costs[2]%10 != 0 {
			t.Fatalf("L3 cost out of range: %d", costs[2])
		}
	}

	if got := config.Get("punch").UpgradeCosts[0]; got != 0 {
		t.Errorf("punch costs must stay fixed, got %d", got)
	}
}

func TestRandomCost(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := RandomCost(rng, 10, 10, 5); got != 10 {
		t.Errorf("RandomCost with empty range: expected 10, got %d", got)
	}
	if got := RandomCost(rng, 10, 40, 0); got != 10 {
		t.Errorf("RandomCost with zero step: expected 10, got %d", got)
	}
}

func TestLoadWeaponsFromDataDir(t *testing.T) {
	config, err := LoadWeapons("../../data/weapons.yaml")
	if err != nil {
		t.Fatalf("LoadWeapons failed: %v", err)
	}

	shield := config.Get("shield")
	if shield.Category != types.WeaponDefense {
		t.Errorf("shield category: expected defense, got %s", shield.Category)
	}
	wantBlock := []float64{0.15, 0.25, 0.45}
	for i, want := range wantBlock {
		if got := shield.Level(i + 1).Block; got != want {
			t.Errorf("shield level %d block: expected %v, got %v", i+1, want, got)
		}
	}
	if !config.Get("spear").Level(3).Pierce {
		t.Error("spear level 3 should pierce")
	}
}
