package components

import "github.com/gonewx/blockbattle/pkg/types"

// PlayerComponent 玩家专属状态
type PlayerComponent struct {
	Points int // 积分（货币）

	PrimaryWeapon   string
	SecondaryWeapon string
	WeaponLevels    map[string]int // 每把武器独立的等级 1~3
	ActiveSlot      types.WeaponSlot

	SpearAmmo int
	BombAmmo  int

	AttackCooldown float64
	BombCooldown   float64 // 炸弹键的独立冷却
	SwingTimer     float64 // 挥动动画剩余时间
	LastMoveDir    types.Vec3

	ShieldHeld bool // 本帧是否按住护盾键
	DashHeld   bool // 冲刺键状态，目前只记录
	IsDead     bool
}

// ActiveWeaponID 返回当前槽位的武器
func (p *PlayerComponent) ActiveWeaponID() string {
	if p.ActiveSlot == types.SlotSecondary {
		return p.SecondaryWeapon
	}
	return p.PrimaryWeapon
}

// LevelOf 返回武器等级，未记录时为 1
func (p *PlayerComponent) LevelOf(weaponID string) int {
	if lvl, ok := p.WeaponLevels[weaponID]; ok && lvl > 0 {
		return lvl
	}
	return 1
}

// AimDirection 返回射击方向，从未移动过时朝 -Z
func (p *PlayerComponent) AimDirection() types.Vec3 {
	dir := p.LastMoveDir.Ground()
	if dir.LengthSq() == 0 {
		return types.V(0, -1)
	}
	return dir.Normalize()
}
