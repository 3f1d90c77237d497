// Package arena 维护竞技场、走廊和大厅三个可行走区域的几何布局，
// 并负责把玩家的移动提议限制在当前有效的区域内。
//
// 坐标系：X 向东，Z 向南，竞技场中心为原点。
// 走廊从竞技场南门向 +Z 延伸，大厅位于走廊南端之外。
package arena

import (
	"math/rand"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/types"
)

// lobbyShiftEpsilon 大厅原点位移平方小于该值时不移动大厅设施
const lobbyShiftEpsilon = 0.0001

// Bounds 地面平面上的轴对齐矩形
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains 判断点是否在矩形内（含边界）
func (b Bounds) Contains(p types.Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Layout 当前波次的区域布局
// 所有坐标都由竞技场尺寸推导，切换地图时调用 Apply 重新计算
type Layout struct {
	arena config.ArenaTuning
	lobby config.LobbyTuning

	Size float64 // 竞技场边长
	Half float64 // 竞技场半边长

	PlayerSpawn types.Vec3 // 玩家出生点
	StartWave   types.Vec3 // 下一波踏板
	EnemyGate   types.Vec3 // 北门，敌人入口
	SouthGate   types.Vec3 // 南门，通往走廊

	SpawnBounds Bounds // 道具随机刷新范围

	CorridorCenterZ float64
	LobbyOrigin     types.Vec3
}

// NewLayout 按初始竞技场尺寸创建布局
func NewLayout(arena config.ArenaTuning, lobby config.LobbyTuning, size float64) *Layout {
	l := &Layout{arena: arena, lobby: lobby}
	l.Apply(size)
	return l
}

// Apply 按新的竞技场尺寸重新推导全部坐标
//
// 参数：
//   - size: 新竞技场边长
//
// 返回：
//   - types.Vec3: 大厅原点的位移，调用方用它平移已放置的大厅设施；
//     位移可以忽略时返回零向量
func (l *Layout) Apply(size float64) types.Vec3 {
	half := size / 2
	l.Size = size
	l.Half = half
	l.PlayerSpawn = types.Vec3{}
	l.StartWave = types.Vec3{}
	l.EnemyGate = types.V(0, -half+l.arena.GateInset)
	l.SouthGate = types.V(0, half-l.arena.GateInset)

	margin := l.arena.SpawnMargin
	l.SpawnBounds = Bounds{
		MinX: -half + margin, MaxX: half - margin,
		MinZ: -half + margin, MaxZ: half - margin,
	}

	l.CorridorCenterZ = l.SouthGate.Z + l.arena.CorridorLength/2

	oldOrigin := l.LobbyOrigin
	l.LobbyOrigin = types.V(0, l.CorridorEndZ()+l.lobby.Size/2+l.lobby.GapFromCorridor)

	delta := l.LobbyOrigin.Sub(oldOrigin)
	if delta.LengthSq() <= lobbyShiftEpsilon {
		return types.Vec3{}
	}
	return delta
}

// CorridorEndZ 走廊南端的 Z 坐标
func (l *Layout) CorridorEndZ() float64 {
	return l.CorridorCenterZ + l.arena.CorridorLength/2
}

// ArenaHalfWalkable 竞技场可行走半边长（墙体内缩后）
func (l *Layout) ArenaHalfWalkable() float64 {
	return l.Half - l.arena.WallMargin
}

// CorridorHalfWidth 走廊可行走半宽
func (l *Layout) CorridorHalfWidth() float64 {
	return l.arena.CorridorWidth/2 - l.arena.WallMargin
}

// FloorBounds 竞技场、走廊和大厅的地板范围（含墙体），供渲染使用
func (l *Layout) FloorBounds() (arenaFloor, corridor, lobby Bounds) {
	arenaFloor = Bounds{MinX: -l.Half, MaxX: l.Half, MinZ: -l.Half, MaxZ: l.Half}

	cw := l.arena.CorridorWidth / 2
	cl := l.arena.CorridorLength / 2
	corridor = Bounds{MinX: -cw, MaxX: cw, MinZ: l.CorridorCenterZ - cl, MaxZ: l.CorridorCenterZ + cl}

	lh := l.lobby.Size / 2
	lobby = Bounds{
		MinX: l.LobbyOrigin.X - lh, MaxX: l.LobbyOrigin.X + lh,
		MinZ: l.LobbyOrigin.Z - lh, MaxZ: l.LobbyOrigin.Z + lh,
	}
	return arenaFloor, corridor, lobby
}

// LobbyBounds 大厅可行走范围
func (l *Layout) LobbyBounds() Bounds {
	half := l.lobby.Size/2 - l.lobby.WalkInset
	return Bounds{
		MinX: l.LobbyOrigin.X - half, MaxX: l.LobbyOrigin.X + half,
		MinZ: l.LobbyOrigin.Z - half, MaxZ: l.LobbyOrigin.Z + half,
	}
}

// InLobby 判断点是否在大厅可行走范围内
func (l *Layout) InLobby(p types.Vec3) bool {
	return l.LobbyBounds().Contains(p)
}

// LobbyPoint 把相对大厅原点的偏移转换为世界坐标
func (l *Layout) LobbyPoint(offset config.Offset) types.Vec3 {
	return l.LobbyOrigin.Add(types.V(offset.X, offset.Z))
}

// ClampToArena 把点硬限制在竞技场可行走范围内
// 用于敌人、流氓机器人和长矛
func (l *Layout) ClampToArena(p types.Vec3) types.Vec3 {
	half := l.ArenaHalfWalkable()
	p.X = types.Clamp(p.X, -half, half)
	p.Z = types.Clamp(p.Z, -half, half)
	return p
}

// OutOfArena 判断点是否越过竞技场边界（不含墙体内缩）
func (l *Layout) OutOfArena(p types.Vec3) bool {
	return p.X < -l.Half || p.X > l.Half || p.Z < -l.Half || p.Z > l.Half
}

// RandomSpawnPosition 在刷新范围内随机取点
func (l *Layout) RandomSpawnPosition(rng *rand.Rand) types.Vec3 {
	b := l.SpawnBounds
	return types.V(
		b.MinX+rng.Float64()*(b.MaxX-b.MinX),
		b.MinZ+rng.Float64()*(b.MaxZ-b.MinZ),
	)
}
