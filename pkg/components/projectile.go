package components

import (
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// ProjectileKind 弹体种类
type ProjectileKind int

const (
	// ProjectileArrow 箭矢，命中或出界即消失
	ProjectileArrow ProjectileKind = iota
	// ProjectileSpear 长矛，命中或出界后插在原地等待回收
	ProjectileSpear
)

// ProjectileComponent 飞行中的箭矢或长矛
// Config 是发射时的武器属性拷贝
type ProjectileComponent struct {
	Kind     ProjectileKind
	Velocity types.Vec3
	Speed    float64
	Config   config.WeaponLevel
	Homing   bool
	BombTip  bool // 追踪状态下炸弹武器射出的带弹头箭矢

	Stuck  bool
	Marked bool                  // 已发出插入标记事件
	HitIDs map[ecs.EntityID]bool // 穿透长矛已命中的敌人
}
