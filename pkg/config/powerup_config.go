package config

import (
	"fmt"

	"github.com/gonewx/blockbattle/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 道具 ID
const (
	PowerupFrost    = "frost"
	PowerupFlame    = "flame"
	PowerupTornado  = "tornado"
	PowerupOil      = "oil"
	PowerupMissiles = "missiles"
	PowerupSize     = "size"
	PowerupFart     = "fart"
)

// PowerupDef 道具定义
type PowerupDef struct {
	ID       string  `yaml:"id"`
	Label    string  `yaml:"label"`
	Color    uint32  `yaml:"color"`
	Duration float64 `yaml:"duration"`
	Letter   string  `yaml:"letter"`
}

// SizeProfile 体型道具的属性档位
type SizeProfile struct {
	Damage  float64 `yaml:"damage"`
	Defense float64 `yaml:"defense"`
	Speed   float64 `yaml:"speed"`
	Scale   float64 `yaml:"scale"`
}

// PowerupsConfig 道具配置文件结构
type PowerupsConfig struct {
	Powerups     []PowerupDef           `yaml:"powerups"`
	SizeProfiles map[string]SizeProfile `yaml:"sizeProfiles"` // grow / shrink
}

var knownPowerups = map[string]bool{
	PowerupFrost: true, PowerupFlame: true, PowerupTornado: true, PowerupOil: true,
	PowerupMissiles: true, PowerupSize: true, PowerupFart: true,
}

// LoadPowerups 从 YAML 文件加载道具配置
func LoadPowerups(filepath string) (*PowerupsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read powerups file %s: %w", filepath, err)
	}

	var config PowerupsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse powerups YAML from %s: %w", filepath, err)
	}

	if err := validatePowerups(&config); err != nil {
		return nil, fmt.Errorf("invalid powerups in %s: %w", filepath, err)
	}
	return &config, nil
}

// validatePowerups 验证道具配置
func validatePowerups(config *PowerupsConfig) error {
	if len(config.Powerups) == 0 {
		return fmt.Errorf("at least one powerup is required")
	}
	for _, p := range config.Powerups {
		if !knownPowerups[p.ID] {
			return fmt.Errorf("unknown powerup id %q", p.ID)
		}
		if p.Duration <= 0 {
			return fmt.Errorf("powerup %s: duration must be positive, got %v", p.ID, p.Duration)
		}
	}
	for _, mode := range []string{"grow", "shrink"} {
		profile, ok := config.SizeProfiles[mode]
		if !ok {
			return fmt.Errorf("size profile %s is required", mode)
		}
		if profile.Scale <= 0 {
			return fmt.Errorf("size profile %s: scale must be positive", mode)
		}
	}
	return nil
}

// Get 按 ID 查找道具定义
func (c *PowerupsConfig) Get(id string) (PowerupDef, bool) {
	for _, p := range c.Powerups {
		if p.ID == id {
			return p, true
		}
	}
	return PowerupDef{}, false
}
