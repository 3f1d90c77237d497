package config

import (
	"fmt"

	"github.com/gonewx/blockbattle/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Offset 相对大厅原点的地面偏移
type Offset struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// PlayerTuning 玩家相关参数
type PlayerTuning struct {
	MaxHealth        float64 `yaml:"maxHealth"`
	BaseSpeed        float64 `yaml:"baseSpeed"`
	SpearAmmo        int     `yaml:"spearAmmo"`
	SwingTime        float64 `yaml:"swingTime"`
	ShieldBonus      float64 `yaml:"shieldBonus"`
	HomingArrowSpeed float64 `yaml:"homingArrowSpeed"` // 追踪道具下近战/炸弹附带箭矢的速度
	BombCooldown     float64 `yaml:"bombCooldown"`
	StartPrimary     string  `yaml:"startPrimary"`
	StartSecondary   string  `yaml:"startSecondary"`
}

// WaveTuning 波次生命周期参数
type WaveTuning struct {
	StartGrace            float64 `yaml:"startGrace"`
	MinElapsedForComplete float64 `yaml:"minElapsedForComplete"`
	WatchdogSeconds       float64 `yaml:"watchdogSeconds"`
	NextWaveCountdown     float64 `yaml:"nextWaveCountdown"`
	PadRadius             float64 `yaml:"padRadius"`
	InitialPowerups       int     `yaml:"initialPowerups"`
	IntroMessageDelay     float64 `yaml:"introMessageDelay"`
}

// EnemyTuning 敌人 AI 参数
type EnemyTuning struct {
	EngageRange        float64 `yaml:"engageRange"`
	AttackCooldown     float64 `yaml:"attackCooldown"`
	SlowFactor         float64 `yaml:"slowFactor"`
	DodgeRadius        float64 `yaml:"dodgeRadius"`
	DodgeDuration      float64 `yaml:"dodgeDuration"`
	DodgeForwardBias   float64 `yaml:"dodgeForwardBias"`
	BurnDPS            float64 `yaml:"burnDps"`
	SeparationDistance float64 `yaml:"separationDistance"`
	DeathWindow        float64 `yaml:"deathWindow"`
}

// CombatTuning 伤害结算参数
type CombatTuning struct {
	FreezeSeconds float64 `yaml:"freezeSeconds"`
	BurnSeconds   float64 `yaml:"burnSeconds"`
	SlowSeconds   float64 `yaml:"slowSeconds"`
	ShockDamage   float64 `yaml:"shockDamage"`
	SplashFactor  float64 `yaml:"splashFactor"`
	FlashSeconds  float64 `yaml:"flashSeconds"`
}

// ProjectileTuning 弹体参数
type ProjectileTuning struct {
	DefaultSpeed      float64 `yaml:"defaultSpeed"`
	HitRadius         float64 `yaml:"hitRadius"`
	ArrowHoming       float64 `yaml:"arrowHoming"`
	SpearHoming       float64 `yaml:"spearHoming"`
	SpearPickupRadius float64 `yaml:"spearPickupRadius"`
	BombFuse          float64 `yaml:"bombFuse"`
}

// PowerupTuning 道具刷新参数
type PowerupTuning struct {
	MaxActive          int     `yaml:"maxActive"`
	Lifetime           float64 `yaml:"lifetime"`
	PickupRadius       float64 `yaml:"pickupRadius"`
	FirstSpawnDelay    float64 `yaml:"firstSpawnDelay"`
	SpawnInterval      float64 `yaml:"spawnInterval"`
	PickupRespawnDelay float64 `yaml:"pickupRespawnDelay"`
}

// ArenaTuning 竞技场与走廊几何参数
type ArenaTuning struct {
	SpawnMargin       float64 `yaml:"spawnMargin"`
	GateInset         float64 `yaml:"gateInset"`
	WallMargin        float64 `yaml:"wallMargin"`
	CorridorWidth     float64 `yaml:"corridorWidth"`
	CorridorLength    float64 `yaml:"corridorLength"`
	GateMessageRadius float64 `yaml:"gateMessageRadius"`
}

// LobbyTuning 大厅几何与交互参数
type LobbyTuning struct {
	Size            float64 `yaml:"size"`
	WalkInset       float64 `yaml:"walkInset"`
	GapFromCorridor float64 `yaml:"gapFromCorridor"`
	InteractRadius  float64 `yaml:"interactRadius"`
	DummyHitRadius  float64 `yaml:"dummyHitRadius"`
	UpgradePad      Offset  `yaml:"upgradePad"`
	SwitchPad       Offset  `yaml:"switchPad"`
	ReturnPortal    Offset  `yaml:"returnPortal"`
	Dummy           Offset  `yaml:"dummy"`
}

// DebugTuning 调试 HUD 参数
type DebugTuning struct {
	HUDInterval float64 `yaml:"hudInterval"`
}

// GameplayConfig 玩法调参总表
type GameplayConfig struct {
	Player     PlayerTuning     `yaml:"player"`
	Wave       WaveTuning       `yaml:"wave"`
	Enemy      EnemyTuning      `yaml:"enemy"`
	Combat     CombatTuning     `yaml:"combat"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Powerup    PowerupTuning    `yaml:"powerup"`
	Arena      ArenaTuning      `yaml:"arena"`
	Lobby      LobbyTuning      `yaml:"lobby"`
	Debug      DebugTuning      `yaml:"debug"`
}

// DefaultGameplayConfig 返回默认调参
// YAML 文件只需覆盖需要修改的键
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Player: PlayerTuning{
			MaxHealth:        100,
			BaseSpeed:        5,
			SpearAmmo:        3,
			SwingTime:        0.2,
			ShieldBonus:      0.2,
			HomingArrowSpeed: 14,
			BombCooldown:     0.4,
			StartPrimary:     "sword",
			StartSecondary:   "bow",
		},
		Wave: WaveTuning{
			StartGrace:            1.2,
			MinElapsedForComplete: 1.5,
			WatchdogSeconds:       2,
			NextWaveCountdown:     3,
			PadRadius:             2.2,
			InitialPowerups:       2,
			IntroMessageDelay:     1.4,
		},
		Enemy: EnemyTuning{
			EngageRange:        2.2,
			AttackCooldown:     1.2,
			SlowFactor:         0.4,
			DodgeRadius:        4,
			DodgeDuration:      0.35,
			DodgeForwardBias:   0.2,
			BurnDPS:            4,
			SeparationDistance: 1.6,
			DeathWindow:        0.6,
		},
		Combat: CombatTuning{
			FreezeSeconds: 5,
			BurnSeconds:   5,
			SlowSeconds:   4,
			ShockDamage:   8,
			SplashFactor:  0.5,
			FlashSeconds:  0.1,
		},
		Projectile: ProjectileTuning{
			DefaultSpeed:      16,
			HitRadius:         1.6,
			ArrowHoming:       0.2,
			SpearHoming:       0.15,
			SpearPickupRadius: 2,
			BombFuse:          1.6,
		},
		Powerup: PowerupTuning{
			MaxActive:          5,
			Lifetime:           15,
			PickupRadius:       1.6,
			FirstSpawnDelay:    20,
			SpawnInterval:      6,
			PickupRespawnDelay: 4,
		},
		Arena: ArenaTuning{
			SpawnMargin:       4,
			GateInset:         1.2,
			WallMargin:        1,
			CorridorWidth:     12,
			CorridorLength:    50,
			GateMessageRadius: 2.5,
		},
		Lobby: LobbyTuning{
			Size:            30,
			WalkInset:       1,
			GapFromCorridor: 2,
			InteractRadius:  2.5,
			DummyHitRadius:  1.6,
			UpgradePad:      Offset{X: -7.6, Z: -4},
			SwitchPad:       Offset{X: -7.6, Z: 0.2},
			ReturnPortal:    Offset{X: 6, Z: 10},
			Dummy:           Offset{X: 0, Z: 6},
		},
		Debug: DebugTuning{
			HUDInterval: 0.2,
		},
	}
}

// LoadGameplay 加载玩法调参，文件中的键覆盖默认值
func LoadGameplay(filepath string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay file %s: %w", filepath, err)
	}

	config := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay YAML from %s: %w", filepath, err)
	}

	if err := validateGameplay(config); err != nil {
		return nil, fmt.Errorf("invalid gameplay config in %s: %w", filepath, err)
	}
	return config, nil
}

// validateGameplay 检查会导致模拟失效的取值
func validateGameplay(config *GameplayConfig) error {
	if config.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %v", config.Player.MaxHealth)
	}
	if config.Player.SpearAmmo < 0 {
		return fmt.Errorf("player.spearAmmo cannot be negative, got %d", config.Player.SpearAmmo)
	}
	if config.Wave.NextWaveCountdown <= 0 {
		return fmt.Errorf("wave.nextWaveCountdown must be positive, got %v", config.Wave.NextWaveCountdown)
	}
	if config.Powerup.MaxActive < 0 {
		return fmt.Errorf("powerup.maxActive cannot be negative, got %d", config.Powerup.MaxActive)
	}
	if config.Arena.CorridorWidth <= 2*config.Arena.WallMargin {
		return fmt.Errorf("arena.corridorWidth %v leaves no walkable space", config.Arena.CorridorWidth)
	}
	if config.Lobby.Size <= 2*config.Lobby.WalkInset {
		return fmt.Errorf("lobby.size %v leaves no walkable space", config.Lobby.Size)
	}
	if config.Enemy.SlowFactor < 0 || config.Enemy.SlowFactor > 1 {
		return fmt.Errorf("enemy.slowFactor must be in [0, 1], got %v", config.Enemy.SlowFactor)
	}
	return nil
}
