package config

import (
	"fmt"
	"log"
	"path"
)

// 数据文件名
const (
	WeaponsFile    = "weapons.yaml"
	EnemyStatsFile = "enemy_stats.yaml"
	PowerupsFile   = "powerups.yaml"
	ArenaMapsFile  = "arena_maps.yaml"
	GameplayFile   = "gameplay.yaml"
)

// DefaultDataDir 嵌入数据目录
const DefaultDataDir = "data"

// GameData 模拟所需的全部静态数据
type GameData struct {
	Weapons  *WeaponsConfig
	Enemies  *EnemyStatsConfig
	Powerups *PowerupsConfig
	Maps     *ArenaMapsConfig
	Gameplay *GameplayConfig
}

// LoadGameData 从目录加载全部数据文件
// dir 为 "data" 时读取嵌入数据，其他目录从磁盘读取
func LoadGameData(dir string) (*GameData, error) {
	join := func(name string) string { return path.Join(dir, name) }

	weapons, err := LoadWeapons(join(WeaponsFile))
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemyStats(join(EnemyStatsFile))
	if err != nil {
		return nil, err
	}
	powerups, err := LoadPowerups(join(PowerupsFile))
	if err != nil {
		return nil, err
	}
	maps, err := LoadArenaMaps(join(ArenaMapsFile))
	if err != nil {
		return nil, err
	}
	gameplay, err := LoadGameplay(join(GameplayFile))
	if err != nil {
		return nil, err
	}

	data := &GameData{
		Weapons:  weapons,
		Enemies:  enemies,
		Powerups: powerups,
		Maps:     maps,
		Gameplay: gameplay,
	}
	if err := data.crossCheck(); err != nil {
		return nil, fmt.Errorf("inconsistent game data in %s: %w", dir, err)
	}

	log.Printf("[Config] Loaded %d weapons, %d powerups, %d maps from %s",
		len(weapons.Weapons), len(powerups.Powerups), len(maps.Maps), dir)
	return data, nil
}

// crossCheck 检查跨文件引用
func (d *GameData) crossCheck() error {
	if !d.Weapons.Has(d.Gameplay.Player.StartPrimary) {
		return fmt.Errorf("player.startPrimary %q is not a weapon", d.Gameplay.Player.StartPrimary)
	}
	if !d.Weapons.Has(d.Gameplay.Player.StartSecondary) {
		return fmt.Errorf("player.startSecondary %q is not a weapon", d.Gameplay.Player.StartSecondary)
	}
	return nil
}
