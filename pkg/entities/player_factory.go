package entities

import (
	"fmt"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// NewPlayerEntity 创建玩家实体
//
// 参数:
//   - em: 实体管理器
//   - data: 游戏数据（武器表和玩家调参）
//   - spawn: 出生点
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 起始武器不存在时返回错误
func NewPlayerEntity(em *ecs.EntityManager, data *config.GameData, spawn types.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	tuning := data.Gameplay.Player
	if !data.Weapons.Has(tuning.StartPrimary) || !data.Weapons.Has(tuning.StartSecondary) {
		return 0, fmt.Errorf("unknown start weapons %q / %q", tuning.StartPrimary, tuning.StartSecondary)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: spawn})
	em.AddComponent(id, &components.FacingComponent{})
	em.AddComponent(id, &components.HealthComponent{Current: tuning.MaxHealth, Max: tuning.MaxHealth})
	em.AddComponent(id, &components.CombatantComponent{Kind: components.KindPlayer})
	em.AddComponent(id, &components.PlayerComponent{
		PrimaryWeapon:   tuning.StartPrimary,
		SecondaryWeapon: tuning.StartSecondary,
		WeaponLevels:    make(map[string]int),
		ActiveSlot:      types.SlotPrimary,
		SpearAmmo:       tuning.SpearAmmo,
		BombAmmo:        data.Weapons.BombCap(),
	})
	em.AddComponent(id, &components.BuffComponent{})
	em.AddComponent(id, components.NewModifierComponent())
	em.AddComponent(id, &components.PoseComponent{Pose: components.PoseUpright})
	return id, nil
}
