package app

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/render"
	"github.com/gonewx/blockbattle/pkg/types"
)

var (
	colorBackground = color.RGBA{0x12, 0x14, 0x18, 0xff}
	colorArena      = color.RGBA{0x3a, 0x40, 0x48, 0xff}
	colorCorridor   = color.RGBA{0x30, 0x35, 0x3c, 0xff}
	colorLobby      = color.RGBA{0x2c, 0x3a, 0x4a, 0xff}
	colorWall       = color.RGBA{0x8a, 0x90, 0x99, 0xff}
	colorShield     = color.RGBA{0x40, 0xa0, 0xff, 0xc0}
	colorHealthBar  = color.RGBA{0x30, 0xd0, 0x50, 0xff}
	colorPanel      = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// drawFrame 用矢量图形绘制俯视图
func drawFrame(screen *ebiten.Image, cam *render.Camera, f render.Frame) {
	screen.Fill(colorBackground)

	drawFloor(screen, cam, f.Corridor, colorCorridor)
	drawFloor(screen, cam, f.Lobby, colorLobby)
	drawFloor(screen, cam, f.Arena, colorArena)

	// 南门：波次进行中画出护盾
	if !f.GateOpen {
		x0, y0 := cam.ToScreen(types.V(f.Corridor.MinX, f.Arena.MaxZ))
		x1, _ := cam.ToScreen(types.V(f.Corridor.MaxX, f.Arena.MaxZ))
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y0), 4, colorShield, true)
	}

	for _, s := range f.Shapes {
		drawShape(screen, cam, s)
	}
}

func drawFloor(screen *ebiten.Image, cam *render.Camera, b arena.Bounds, fill color.RGBA) {
	x, y, w, h := cam.RectToScreen(b)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colorWall, false)
}

func drawShape(screen *ebiten.Image, cam *render.Camera, s render.Shape) {
	x, y := cam.ToScreen(s.Pos)
	r := s.Radius * cam.Scale
	c := flashColor(s.Color, s.Flash)

	switch s.Kind {
	case render.ShapeArrow, render.ShapeSpear:
		length := 1.2 * cam.Scale
		if s.Kind == render.ShapeSpear {
			length = 1.8 * cam.Scale
		}
		dx, dy := math.Sin(s.Yaw)*length/2, math.Cos(s.Yaw)*length/2
		vector.StrokeLine(screen, float32(x-dx), float32(y-dy), float32(x+dx), float32(y+dy), 3, c, true)
	case render.ShapeFixture, render.ShapePowerup:
		vector.DrawFilledRect(screen, float32(x-r), float32(y-r), float32(2*r), float32(2*r), c, false)
		ebitenutil.DebugPrintAt(screen, string(s.Glyph), int(x)-3, int(y)-8)
	default:
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), c, true)
		if s.Toppled {
			vector.StrokeLine(screen, float32(x-r), float32(y-r), float32(x+r), float32(y+r), 2, color.White, true)
		} else if s.Kind == render.ShapePlayer || s.Kind == render.ShapeRogue {
			// 朝向指示
			fx, fy := math.Sin(s.Yaw)*r, math.Cos(s.Yaw)*r
			vector.StrokeLine(screen, float32(x), float32(y), float32(x+fx), float32(y+fy), 2, color.White, true)
		}
	}

	if s.Health >= 0 && s.Health < 100 {
		w := float32(2 * r)
		vector.DrawFilledRect(screen, float32(x-r), float32(y-r-6), w, 3, colorPanel, false)
		vector.DrawFilledRect(screen, float32(x-r), float32(y-r-6), w*float32(s.Health/100), 3, colorHealthBar, false)
	}
}

// flashColor 按闪白强度向白色混合
func flashColor(c color.RGBA, intensity float64) color.RGBA {
	if intensity <= 0 {
		return c
	}
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*intensity)
	}
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

// drawHUD 绘制状态栏、横幅、调试计数和菜单
func drawHUD(screen *ebiten.Image, hud *render.HUD, messageAlpha float64) {
	drawLines(screen, hud.StatusLines(), 12, 10)

	if hud.Message != "" && messageAlpha > 0 {
		w := float32(len(hud.Message)*6 + 24)
		x := float32(ScreenWidth)/2 - w/2
		y := float32(90) - float32(20*(1-messageAlpha))
		vector.DrawFilledRect(screen, x, y, w, 24, colorPanel, false)
		ebitenutil.DebugPrintAt(screen, hud.Message, int(x)+12, int(y)+4)
	}

	if lines := hud.DebugLines(); len(lines) > 0 {
		drawLines(screen, lines, ScreenWidth-220, 10)
	}
	if lines := hud.ArmoryLines(); len(lines) > 0 {
		drawPanel(screen, lines)
	}
	if lines := hud.GameOverLines(); len(lines) > 0 {
		drawPanel(screen, lines)
	}
}

func drawLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*16)
	}
}

func drawPanel(screen *ebiten.Image, lines []string) {
	h := float32(len(lines)*16 + 24)
	w := float32(320)
	x := float32(ScreenWidth)/2 - w/2
	y := float32(ScreenHeight)/2 - h/2
	vector.DrawFilledRect(screen, x, y, w, h, colorPanel, false)
	vector.StrokeRect(screen, x, y, w, h, 2, colorWall, false)
	drawLines(screen, lines, int(x)+16, int(y)+12)
}
