package config

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/blockbattle/pkg/embedded"
	"github.com/gonewx/blockbattle/pkg/types"
	"gopkg.in/yaml.v3"
)

// FallbackWeaponID 未知武器 ID 时使用的武器
const FallbackWeaponID = "punch"

// WeaponLevel 单个武器等级的属性
// 开火时整体按值拷贝进弹体，之后的升级不会影响已发射的弹体
type WeaponLevel struct {
	Label           string  `yaml:"label"`
	Damage          float64 `yaml:"damage"`
	Defense         float64 `yaml:"defense"`
	Range           float64 `yaml:"range"`
	Cooldown        float64 `yaml:"cooldown"`
	Speed           float64 `yaml:"speed"`
	Burn            float64 `yaml:"burn"`            // 燃烧秒数
	Disarm          float64 `yaml:"disarm"`          // 缴械（减速）秒数
	Shock           float64 `yaml:"shock"`           // 连锁电击半径
	Splash          float64 `yaml:"splash"`          // 溅射半径
	Push            float64 `yaml:"push"`            // 击退距离
	Block           float64 `yaml:"block"`           // 格挡比例 (0~1)
	ProjectileSpeed float64 `yaml:"projectileSpeed"` // 箭矢速度
	ThrowSpeed      float64 `yaml:"throwSpeed"`      // 投掷速度
	Radius          float64 `yaml:"radius"`          // 爆炸半径
	Pierce          bool    `yaml:"pierce"`          // 长矛穿透
}

// WeaponDef 武器定义
type WeaponDef struct {
	ID           string               `yaml:"id"`
	Name         string               `yaml:"name"`
	Category     types.WeaponCategory `yaml:"category"`
	Description  string               `yaml:"description"`
	Levels       []WeaponLevel        `yaml:"levels"`
	UpgradeCosts []int                `yaml:"upgradeCosts"`
	MaxActive    int                  `yaml:"maxActive"`  // 同时存在的炸弹上限
	FixedCosts   bool                 `yaml:"fixedCosts"` // 启动时不重新随机价格
}

// MaxLevel 返回最高等级（从 1 开始）
func (w *WeaponDef) MaxLevel() int {
	return len(w.Levels)
}

// Level 返回指定等级的属性，等级被限制在 [1, MaxLevel]
func (w *WeaponDef) Level(level int) WeaponLevel {
	index := level - 1
	if index < 0 {
		index = 0
	}
	if index > len(w.Levels)-1 {
		index = len(w.Levels) - 1
	}
	return w.Levels[index]
}

// UpgradeCost 返回升到 nextLevel 的价格，缺失时为 0
func (w *WeaponDef) UpgradeCost(nextLevel int) int {
	index := nextLevel - 1
	if index < 0 || index >= len(w.UpgradeCosts) {
		return 0
	}
	return w.UpgradeCosts[index]
}

// WeaponsConfig 武器配置文件结构
type WeaponsConfig struct {
	Weapons []WeaponDef `yaml:"weapons"`

	byID map[string]*WeaponDef
}

// LoadWeapons 从 YAML 文件加载武器配置
// 参数：
//
//	filepath - 配置文件路径（"data/" 前缀读取嵌入数据）
//
// 返回：
//
//	*WeaponsConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadWeapons(filepath string) (*WeaponsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapons file %s: %w", filepath, err)
	}

	config, err := ParseWeapons(data)
	if err != nil {
		return nil, fmt.Errorf("invalid weapons config in %s: %w", filepath, err)
	}
	return config, nil
}

// ParseWeapons 解析并校验武器 YAML
func ParseWeapons(data []byte) (*WeaponsConfig, error) {
	var config WeaponsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse weapons YAML: %w", err)
	}

	if err := validateWeapons(&config); err != nil {
		return nil, err
	}

	config.index()
	return &config, nil
}

func (c *WeaponsConfig) index() {
	c.byID = make(map[string]*WeaponDef, len(c.Weapons))
	for i := range c.Weapons {
		c.byID[c.Weapons[i].ID] = &c.Weapons[i]
	}
}

// validateWeapons 验证武器配置的完整性和合法性
func validateWeapons(config *WeaponsConfig) error {
	if len(config.Weapons) == 0 {
		return fmt.Errorf("at least one weapon is required")
	}

	seen := make(map[string]bool)
	hasFallback := false
	for _, w := range config.Weapons {
		if w.ID == "" {
			return fmt.Errorf("weapon id cannot be empty")
		}
		if seen[w.ID] {
			return fmt.Errorf("duplicate weapon id %s", w.ID)
		}
		seen[w.ID] = true
		if w.ID == FallbackWeaponID {
			hasFallback = true
		}

		if err := w.Category.Validate(); err != nil {
			return fmt.Errorf("weapon %s: %w", w.ID, err)
		}
		if len(w.Levels) == 0 || len(w.Levels) > 3 {
			return fmt.Errorf("weapon %s: must define 1 to 3 levels, got %d", w.ID, len(w.Levels))
		}
		if len(w.UpgradeCosts) != len(w.Levels) {
			return fmt.Errorf("weapon %s: upgradeCosts must have %d entries, got %d", w.ID, len(w.Levels), len(w.UpgradeCosts))
		}
		if w.Category == types.WeaponBomb && w.MaxActive < 1 {
			return fmt.Errorf("weapon %s: bomb weapons need maxActive >= 1", w.ID)
		}

		for i, lvl := range w.Levels {
			if lvl.Damage < 0 {
				return fmt.Errorf("weapon %s level %d: damage cannot be negative, got %v", w.ID, i+1, lvl.Damage)
			}
			if lvl.Cooldown < 0 {
				return fmt.Errorf("weapon %s level %d: cooldown cannot be negative, got %v", w.ID, i+1, lvl.Cooldown)
			}
			if lvl.Block < 0 || lvl.Block >= 1 {
				return fmt.Errorf("weapon %s level %d: block must be in [0, 1), got %v", w.ID, i+1, lvl.Block)
			}
			if w.Category == types.WeaponBomb && lvl.Radius <= 0 {
				return fmt.Errorf("weapon %s level %d: bomb radius must be positive", w.ID, i+1)
			}
		}
	}

	if !hasFallback {
		return fmt.Errorf("fallback weapon %q is required", FallbackWeaponID)
	}
	return nil
}

// Get 获取武器定义，未知 ID 返回 punch
func (c *WeaponsConfig) Get(id string) *WeaponDef {
	if c.byID == nil {
		c.index()
	}
	if w, ok := c.byID[id]; ok {
		return w
	}
	return c.byID[FallbackWeaponID]
}

// Has 判断武器 ID 是否存在
func (c *WeaponsConfig) Has(id string) bool {
	if c.byID == nil {
		c.index()
	}
	_, ok := c.byID[id]
	return ok
}

// IDs 按配置顺序返回所有武器 ID
func (c *WeaponsConfig) IDs() []string {
	ids := make([]string, 0, len(c.Weapons))
	for _, w := range c.Weapons {
		ids = append(ids, w.ID)
	}
	return ids
}

// BombCap 返回炸弹武器的同时存在上限，没有炸弹武器时为 0
func (c *WeaponsConfig) BombCap() int {
	for _, w := range c.Weapons {
		if w.Category == types.WeaponBomb {
			return w.MaxActive
		}
	}
	return 0
}

// BombWeaponID 返回第一个炸弹类武器的 ID
func (c *WeaponsConfig) BombWeaponID() string {
	for _, w := range c.Weapons {
		if w.Category == types.WeaponBomb {
			return w.ID
		}
	}
	return ""
}

// SeedUpgradeCosts 为每把可升级武器重新随机升级价格
// L1: 5~20 步长 5；L2: 25~60 步长 5；L3: 60~120 步长 10
func (c *WeaponsConfig) SeedUpgradeCosts(rng *rand.Rand) {
	ranges := [][3]int{{5, 20, 5}, {25, 60, 5}, {60, 120, 10}}
	for i := range c.Weapons {
		w := &c.Weapons[i]
		if w.FixedCosts {
			continue
		}
		for level := range w.UpgradeCosts {
			if level >= len(ranges) {
				break
			}
			r := ranges[level]
			w.UpgradeCosts[level] = RandomCost(rng, r[0], r[1], r[2])
		}
	}
}

// RandomCost 返回 [min, max] 内按 step 对齐的随机价格
func RandomCost(rng *rand.Rand, min, max, step int) int {
	if step <= 0 || max <= min {
		return min
	}
	steps := int(math.Floor(float64(max-min) / float64(step)))
	return min + rng.Intn(steps+1)*step
}
