// Package render 把模拟状态整理成与绘制后端无关的俯视图
//
// ebiten 窗口、终端前端和 PNG 快照工具都从 Collect 得到同一份 Frame，
// 再用各自的方式画出来。
package render

import (
	"image/color"
	"sort"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

// ShapeKind 图形种类
type ShapeKind int

const (
	ShapeFixture ShapeKind = iota
	ShapePowerup
	ShapeBomb
	ShapeEnemy
	ShapeBoss
	ShapeRogue
	ShapePlayer
	ShapeArrow
	ShapeSpear
)

// Shape 一个待绘制的实体
// 列表按种类排序，种类值越大越靠上层
type Shape struct {
	Entity ecs.EntityID
	Kind   ShapeKind
	Pos    types.Vec3
	Radius float64
	Yaw    float64
	Color  color.RGBA
	Glyph  rune // 终端和标签使用的单字符

	Flash   float64 // 闪白强度 0..1
	Toppled bool
	Health  float64 // 生命百分比，没有血条时为 -1
}

// Frame 一帧的俯视图
type Frame struct {
	Arena    arena.Bounds
	Corridor arena.Bounds
	Lobby    arena.Bounds
	GateOpen bool // 波次完成后南门打开

	Shapes  []Shape
	Message string
	Focus   types.Vec3 // 镜头跟随点（玩家位置）
}

var (
	colorPlayer  = color.RGBA{0x3d, 0x8b, 0xff, 0xff}
	colorBoss    = color.RGBA{0x9b, 0x30, 0xd9, 0xff}
	colorRogue   = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	colorArrow   = color.RGBA{0xee, 0xee, 0xaa, 0xff}
	colorSpear   = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorBomb    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorPad     = color.RGBA{0x33, 0xdd, 0x77, 0xff}
	colorStation = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorPortal  = color.RGBA{0x00, 0xe5, 0xff, 0xff}
	colorDummy   = color.RGBA{0xb0, 0x8d, 0x57, 0xff}

	enemyColors = map[types.EnemySize]color.RGBA{
		types.EnemySmall:  {0xe0, 0x44, 0x44, 0xff},
		types.EnemyMedium: {0xc0, 0x30, 0x30, 0xff},
		types.EnemyLarge:  {0x90, 0x20, 0x20, 0xff},
	}
)

// Collect 从模拟状态生成一帧俯视图
// 只读访问状态，必须在模拟所在的 goroutine 调用
func Collect(st *game.SimulationState) Frame {
	em := st.EntityManager
	f := Frame{
		GateOpen: st.Wave.Complete,
		Message:  st.Message,
		Focus:    st.PlayerPosition(),
	}
	f.Arena, f.Corridor, f.Lobby = st.Layout.FloorBounds()

	for _, id := range ecs.GetEntitiesWith2[*components.FixtureComponent, *components.PositionComponent](em) {
		fixture, _ := ecs.GetComponent[*components.FixtureComponent](em, id)
		if !fixture.Visible {
			continue
		}
		s := base(st, id, ShapeFixture, 1.2)
		switch fixture.Kind {
		case components.FixtureNextWavePad:
			s.Color, s.Glyph, s.Radius = colorPad, '=', 1.5
		case components.FixtureUpgradePad:
			s.Color, s.Glyph = colorStation, 'U'
		case components.FixtureSwitchPad:
			s.Color, s.Glyph = colorStation, 'S'
		case components.FixtureReturnPortal:
			s.Color, s.Glyph = colorPortal, 'O'
		case components.FixtureDummy:
			s.Color, s.Glyph, s.Radius = colorDummy, 'D', 0.8
		}
		f.Shapes = append(f.Shapes, s)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PowerupComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.PowerupComponent](em, id)
		s := base(st, id, ShapePowerup, 0.6)
		s.Color = rgb(p.Def.Color)
		s.Yaw = p.Spin
		s.Glyph = firstRune(p.Def.Letter, '?')
		f.Shapes = append(f.Shapes, s)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BombComponent, *components.PositionComponent](em) {
		s := base(st, id, ShapeBomb, 0.5)
		s.Color, s.Glyph = colorBomb, '*'
		f.Shapes = append(f.Shapes, s)
	}

	for _, id := range st.Enemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		scale := st.Data.Enemies.StatsFor(enemy.Size, st.Wave.Current).Scale
		if scale <= 0 {
			scale = 1
		}
		kind := ShapeEnemy
		if enemy.IsBoss {
			kind = ShapeBoss
		}
		s := base(st, id, kind, 0.7*scale)
		s.Health = healthPercent(em, id)
		if enemy.IsBoss {
			s.Color, s.Glyph = colorBoss, 'B'
		} else {
			s.Color = enemyColors[enemy.Size]
			s.Glyph = []rune(enemy.Size.String())[0]
		}
		f.Shapes = append(f.Shapes, s)
	}

	if st.RogueAlive() {
		s := base(st, st.RogueID, ShapeRogue, 0.9)
		s.Color, s.Glyph = colorRogue, 'R'
		s.Health = healthPercent(em, st.RogueID)
		if rogue, ok := ecs.GetComponent[*components.RogueComponent](em, st.RogueID); ok {
			s.Yaw = rogue.Spin
		}
		f.Shapes = append(f.Shapes, s)
	}

	if em.Exists(st.PlayerID) {
		s := base(st, st.PlayerID, ShapePlayer, 0.8)
		s.Color, s.Glyph = colorPlayer, '@'
		if mods, ok := ecs.GetComponent[*components.ModifierComponent](em, st.PlayerID); ok && mods.Scale > 0 {
			s.Radius *= mods.Scale
		}
		if pose, ok := ecs.GetComponent[*components.PoseComponent](em, st.PlayerID); ok {
			s.Toppled = pose.Pose == components.PoseToppled
		}
		f.Shapes = append(f.Shapes, s)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		kind, c, g := ShapeArrow, colorArrow, '-'
		if p.Kind == components.ProjectileSpear {
			kind, c, g = ShapeSpear, colorSpear, '/'
		}
		s := base(st, id, kind, 0.25)
		s.Color, s.Glyph = c, g
		if p.Velocity.LengthSq() > 0 {
			s.Yaw = components.YawToward(p.Velocity)
		}
		f.Shapes = append(f.Shapes, s)
	}

	sort.SliceStable(f.Shapes, func(i, j int) bool {
		return f.Shapes[i].Kind < f.Shapes[j].Kind
	})
	return f
}

func base(st *game.SimulationState, id ecs.EntityID, kind ShapeKind, radius float64) Shape {
	em := st.EntityManager
	s := Shape{Entity: id, Kind: kind, Radius: radius, Health: -1}
	s.Pos, _ = st.PositionOf(id)
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
		s.Yaw = facing.Yaw
	}
	if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](em, id); ok {
		s.Flash = flash.Intensity
	}
	return s
}

func healthPercent(em *ecs.EntityManager, id ecs.EntityID) float64 {
	if h, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
		return h.Percent()
	}
	return -1
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
