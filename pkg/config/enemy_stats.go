package config

import (
	"fmt"
	"math"

	"github.com/gonewx/blockbattle/pkg/embedded"
	"github.com/gonewx/blockbattle/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStats 单个体型的基础属性
type EnemyStats struct {
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`
	Points int     `yaml:"points"`
	Scale  float64 `yaml:"scale"` // 模型缩放，0 视为 1
}

// BossScaling 首领随波次的成长系数
// boost = max(wave - 1, 0)
type BossScaling struct {
	HealthPerWave float64 `yaml:"healthPerWave"`
	DamagePerWave float64 `yaml:"damagePerWave"`
	SpeedPerWave  float64 `yaml:"speedPerWave"`
	MinSpeed      float64 `yaml:"minSpeed"`
	PointsPerWave float64 `yaml:"pointsPerWave"`
}

// RogueStats 流氓机器人属性
type RogueStats struct {
	Health         float64 `yaml:"health"`
	Speed          float64 `yaml:"speed"`
	Damage         float64 `yaml:"damage"`
	AttackCooldown float64 `yaml:"attackCooldown"`
	AttackRange    float64 `yaml:"attackRange"`
	SpinRate       float64 `yaml:"spinRate"`
	SpawnChance    float64 `yaml:"spawnChance"`
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies     map[string]EnemyStats `yaml:"enemies"` // 体型名称到属性的映射
	BossScaling BossScaling           `yaml:"bossScaling"`
	Rogue       RogueStats            `yaml:"rogue"`
}

// LoadEnemyStats 从 YAML 文件加载敌人属性配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*EnemyStatsConfig - 解析后的配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadEnemyStats(filepath string) (*EnemyStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filepath, err)
	}

	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", filepath, err)
	}

	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(config *EnemyStatsConfig) error {
	for _, size := range []types.EnemySize{types.EnemySmall, types.EnemyMedium, types.EnemyLarge, types.EnemyBoss} {
		stats, ok := config.Enemies[size.String()]
		if !ok {
			return fmt.Errorf("enemy size %s is required", size)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %v", size, stats.Health)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %v", size, stats.Speed)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("enemy %s: damage cannot be negative, got %v", size, stats.Damage)
		}
		if stats.Points < 0 {
			return fmt.Errorf("enemy %s: points cannot be negative, got %d", size, stats.Points)
		}
	}

	if config.Rogue.Health <= 0 {
		return fmt.Errorf("rogue: health must be positive, got %v", config.Rogue.Health)
	}
	if config.Rogue.SpawnChance < 0 || config.Rogue.SpawnChance > 1 {
		return fmt.Errorf("rogue: spawnChance must be in [0, 1], got %v", config.Rogue.SpawnChance)
	}
	return nil
}

// StatsFor 返回指定体型在指定波次的最终属性
// 只有首领随波次成长
func (c *EnemyStatsConfig) StatsFor(size types.EnemySize, wave int) EnemyStats {
	stats := c.Enemies[size.String()]
	if stats.Scale == 0 {
		stats.Scale = 1
	}
	if size != types.EnemyBoss {
		return stats
	}

	boost := float64(wave - 1)
	if boost < 0 {
		boost = 0
	}
	s := c.BossScaling
	stats.Health = math.Round(stats.Health + boost*s.HealthPerWave)
	stats.Damage = math.Round(stats.Damage + boost*s.DamagePerWave)
	stats.Speed = math.Max(s.MinSpeed, stats.Speed-boost*s.SpeedPerWave)
	stats.Points = int(math.Round(float64(stats.Points) + boost*s.PointsPerWave))
	return stats
}
