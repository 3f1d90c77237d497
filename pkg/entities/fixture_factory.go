package entities

import (
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// NewFixtureEntity 创建场景设施
//
// 参数:
//   - em: 实体管理器
//   - kind: 设施种类
//   - pos: 世界坐标
//   - inLobby: 是否属于大厅（随大厅原点平移）
//   - offset: 相对大厅原点的偏移，仅 inLobby 时有意义
func NewFixtureEntity(em *ecs.EntityManager, kind components.FixtureKind, pos types.Vec3, inLobby bool, offset config.Offset) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Position: pos})
	em.AddComponent(id, &components.FixtureComponent{
		Kind:    kind,
		InLobby: inLobby,
		Offset:  offset,
		Visible: inLobby,
	})
	return id
}

// NewDummyEntity 创建大厅训练假人
// 假人只响应闪烁，不掉血
func NewDummyEntity(em *ecs.EntityManager, pos types.Vec3, offset config.Offset) ecs.EntityID {
	id := NewFixtureEntity(em, components.FixtureDummy, pos, true, offset)
	em.AddComponent(id, &components.CombatantComponent{Kind: components.KindDummy})
	em.AddComponent(id, &components.FacingComponent{})
	return id
}

// LobbyFixtures 大厅和竞技场的全部设施
type LobbyFixtures struct {
	NextWavePad  ecs.EntityID
	UpgradePad   ecs.EntityID
	SwitchPad    ecs.EntityID
	ReturnPortal ecs.EntityID
	Dummy        ecs.EntityID
}

// NewLobbyFixtures 按当前布局放置下一波踏板和大厅三个站点及训练假人
//
// 参数:
//   - em: 实体管理器
//   - lobbyOrigin: 大厅原点
//   - startWave: 下一波踏板位置
//   - lobby: 大厅调参（站点偏移）
func NewLobbyFixtures(em *ecs.EntityManager, lobbyOrigin, startWave types.Vec3, lobby config.LobbyTuning) LobbyFixtures {
	at := func(o config.Offset) types.Vec3 {
		return lobbyOrigin.Add(types.V(o.X, o.Z))
	}
	f := LobbyFixtures{
		NextWavePad:  NewFixtureEntity(em, components.FixtureNextWavePad, startWave, false, config.Offset{}),
		UpgradePad:   NewFixtureEntity(em, components.FixtureUpgradePad, at(lobby.UpgradePad), true, lobby.UpgradePad),
		SwitchPad:    NewFixtureEntity(em, components.FixtureSwitchPad, at(lobby.SwitchPad), true, lobby.SwitchPad),
		ReturnPortal: NewFixtureEntity(em, components.FixtureReturnPortal, at(lobby.ReturnPortal), true, lobby.ReturnPortal),
		Dummy:        NewDummyEntity(em, at(lobby.Dummy), lobby.Dummy),
	}
	return f
}
