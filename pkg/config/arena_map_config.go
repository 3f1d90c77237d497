package config

import (
	"fmt"

	"github.com/gonewx/blockbattle/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// MapPreset 竞技场地图预设
type MapPreset struct {
	Name      string  `yaml:"name"`
	FirstWave int     `yaml:"firstWave"`
	LastWave  int     `yaml:"lastWave"`
	Size      float64 `yaml:"size"`
}

// ArenaMapsConfig 地图配置文件结构
type ArenaMapsConfig struct {
	Maps []MapPreset `yaml:"maps"`
}

// LoadArenaMaps 从 YAML 文件加载地图预设
func LoadArenaMaps(filepath string) (*ArenaMapsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena maps file %s: %w", filepath, err)
	}

	var config ArenaMapsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse arena maps YAML from %s: %w", filepath, err)
	}

	if err := validateArenaMaps(&config); err != nil {
		return nil, fmt.Errorf("invalid arena maps in %s: %w", filepath, err)
	}
	return &config, nil
}

// validateArenaMaps 地图区间必须从第 1 波开始、连续且尺寸为正
func validateArenaMaps(config *ArenaMapsConfig) error {
	if len(config.Maps) == 0 {
		return fmt.Errorf("at least one map is required")
	}
	expected := 1
	for _, m := range config.Maps {
		if m.Size <= 0 {
			return fmt.Errorf("map %s: size must be positive, got %v", m.Name, m.Size)
		}
		if m.FirstWave != expected {
			return fmt.Errorf("map %s: firstWave must be %d, got %d", m.Name, expected, m.FirstWave)
		}
		if m.LastWave < m.FirstWave {
			return fmt.Errorf("map %s: lastWave %d is before firstWave %d", m.Name, m.LastWave, m.FirstWave)
		}
		expected = m.LastWave + 1
	}
	return nil
}

// ForWave 返回波次对应的地图，超出范围时返回最后一张
func (c *ArenaMapsConfig) ForWave(wave int) MapPreset {
	for _, m := range c.Maps {
		if wave >= m.FirstWave && wave <= m.LastWave {
			return m
		}
	}
	return c.Maps[len(c.Maps)-1]
}
