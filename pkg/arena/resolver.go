package arena

import (
	"math"

	"github.com/gonewx/blockbattle/pkg/types"
)

// Policy 移动限制策略
type Policy int

const (
	// PolicyArena 限制在竞技场内
	PolicyArena Policy = iota
	// PolicyLobby 限制在大厅内
	PolicyLobby
	// PolicyCorridor 限制在走廊内
	PolicyCorridor
)

// String 返回策略名称
func (p Policy) String() string {
	switch p {
	case PolicyArena:
		return "arena"
	case PolicyLobby:
		return "lobby"
	case PolicyCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// Resolver 玩家移动解析器
// 根据波次阶段和玩家位置选择限制策略，再逐轴限制移动提议
type Resolver struct {
	layout *Layout
}

// NewResolver 创建移动解析器
func NewResolver(layout *Layout) *Resolver {
	return &Resolver{layout: layout}
}

// SelectPolicy 选择当前帧的限制策略
//
// 规则（按顺序）：
//  1. 波次进行中：竞技场
//  2. 波次完成且任一端点在大厅内：大厅
//  3. 波次完成且任一端点在竞技场南边之外，且玩家从门洞宽度内进入：走廊
//  4. 其他：竞技场
func (r *Resolver) SelectPolicy(cur, next types.Vec3, waveComplete bool) Policy {
	if !waveComplete {
		return PolicyArena
	}
	if r.layout.InLobby(cur) || r.layout.InLobby(next) {
		return PolicyLobby
	}
	startZ := r.layout.ArenaHalfWalkable()
	if cur.Z > startZ || next.Z > startZ {
		// 南墙只在门洞处开口：从竞技场内越过南边时须在走廊宽度内，否则会穿墙
		if cur.Z <= startZ && math.Abs(cur.X) > r.layout.CorridorHalfWidth() {
			return PolicyArena
		}
		return PolicyCorridor
	}
	return PolicyArena
}

// ResolvePlayerMovement 返回限制后的玩家位置
//
// 参数：
//   - cur: 当前位置
//   - next: 移动提议
//   - waveComplete: 当前波次是否已完成
//
// 返回：
//   - types.Vec3: 限制后的新位置，Y 与 next 相同
func (r *Resolver) ResolvePlayerMovement(cur, next types.Vec3, waveComplete bool) types.Vec3 {
	l := r.layout
	half := l.ArenaHalfWalkable()

	switch r.SelectPolicy(cur, next, waveComplete) {
	case PolicyLobby:
		b := l.LobbyBounds()
		next.X = clampAxis(cur.X, next.X, b.MinX, b.MaxX)
		next.Z = clampAxis(cur.Z, next.Z, b.MinZ, b.MaxZ)
	case PolicyCorridor:
		corridorHalf := l.CorridorHalfWidth()
		endZ := l.CorridorEndZ() - l.arena.WallMargin
		maxZ := math.Max(endZ, l.LobbyBounds().MinZ)
		next.Z = clampAxis(cur.Z, next.Z, half, maxZ)
		next.X = clampAxis(cur.X, next.X, -corridorHalf, corridorHalf)
	default:
		next.X = clampAxis(cur.X, next.X, -half, half)
		next.Z = clampAxis(cur.Z, next.Z, -half, half)
	}
	return next
}

// clampAxis 单轴限制
// 当前值和提议值都在范围外时保持当前值，避免跨区域瞬移；
// 否则把提议值硬限制到范围内
func clampAxis(cur, next, min, max float64) float64 {
	curOut := cur < min || cur > max
	nextOut := next < min || next > max
	if curOut && nextOut {
		return cur
	}
	return types.Clamp(next, min, max)
}
