package types

import "fmt"

// WeaponCategory 武器伤害类别
type WeaponCategory string

const (
	WeaponMelee   WeaponCategory = "melee"   // 近战挥砍
	WeaponRanged  WeaponCategory = "ranged"  // 弓箭
	WeaponDefense WeaponCategory = "defense" // 盾牌，提供格挡
	WeaponBomb    WeaponCategory = "bomb"    // 放置炸弹
	WeaponSpear   WeaponCategory = "spear"   // 可投掷长矛
)

// Validate 检查类别是否合法
func (c WeaponCategory) Validate() error {
	switch c {
	case WeaponMelee, WeaponRanged, WeaponDefense, WeaponBomb, WeaponSpear:
		return nil
	}
	return fmt.Errorf("unknown weapon category %q", string(c))
}

// WeaponSlot 玩家武器槽位
type WeaponSlot int

const (
	SlotPrimary WeaponSlot = iota
	SlotSecondary
)

// Other 返回另一个槽位
func (s WeaponSlot) Other() WeaponSlot {
	if s == SlotPrimary {
		return SlotSecondary
	}
	return SlotPrimary
}

func (s WeaponSlot) String() string {
	if s == SlotPrimary {
		return "Primary"
	}
	return "Secondary"
}
