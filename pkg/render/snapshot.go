package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/types"
)

// Snapshot 用 gg 把一帧画成图片，供无窗口环境使用
//
// 参数：
//   - f: Collect 得到的俯视图
//   - hud: 抬头显示数据，可为 nil
//   - cam: 镜头，决定画布尺寸和缩放
//
// 返回：
//   - image.Image: RGBA 图片
func Snapshot(f Frame, hud *HUD, cam *Camera) image.Image {
	dc := gg.NewContext(cam.Width, cam.Height)
	dc.SetRGB255(0x12, 0x14, 0x18)
	dc.Clear()

	floor := func(b arena.Bounds, c color.RGBA) {
		x, y, w, h := cam.RectToScreen(b)
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(c)
		dc.FillPreserve()
		dc.SetRGB255(0x8a, 0x90, 0x99)
		dc.SetLineWidth(2)
		dc.Stroke()
	}
	floor(f.Corridor, color.RGBA{0x30, 0x35, 0x3c, 0xff})
	floor(f.Lobby, color.RGBA{0x2c, 0x3a, 0x4a, 0xff})
	floor(f.Arena, color.RGBA{0x3a, 0x40, 0x48, 0xff})

	if !f.GateOpen {
		x0, y0 := cam.ToScreen(types.V(f.Corridor.MinX, f.Arena.MaxZ))
		x1, _ := cam.ToScreen(types.V(f.Corridor.MaxX, f.Arena.MaxZ))
		dc.SetRGBA255(0x40, 0xa0, 0xff, 0xc0)
		dc.SetLineWidth(4)
		dc.DrawLine(x0, y0, x1, y0)
		dc.Stroke()
	}

	dc.SetFontFace(basicfont.Face7x13)
	for _, s := range f.Shapes {
		x, y := cam.ToScreen(s.Pos)
		r := s.Radius * cam.Scale
		dc.SetColor(s.Color)
		switch s.Kind {
		case ShapeArrow, ShapeSpear:
			dx, dy := math.Sin(s.Yaw)*r*2, math.Cos(s.Yaw)*r*2
			dc.SetLineWidth(3)
			dc.DrawLine(x-dx, y-dy, x+dx, y+dy)
			dc.Stroke()
		case ShapeFixture, ShapePowerup:
			dc.DrawRectangle(x-r, y-r, 2*r, 2*r)
			dc.Fill()
			dc.SetRGB(1, 1, 1)
			dc.DrawStringAnchored(string(s.Glyph), x, y, 0.5, 0.35)
		default:
			dc.DrawCircle(x, y, r)
			dc.Fill()
			if s.Flash > 0 {
				dc.SetRGBA(1, 1, 1, s.Flash)
				dc.DrawCircle(x, y, r)
				dc.Fill()
			}
		}
		if s.Health >= 0 && s.Health < 100 {
			dc.SetRGBA(0, 0, 0, 0.7)
			dc.DrawRectangle(x-r, y-r-6, 2*r, 3)
			dc.Fill()
			dc.SetRGB255(0x30, 0xd0, 0x50)
			dc.DrawRectangle(x-r, y-r-6, 2*r*s.Health/100, 3)
			dc.Fill()
		}
	}

	if hud != nil {
		dc.SetRGB(1, 1, 1)
		for i, line := range hud.StatusLines() {
			dc.DrawString(line, 10, float64(20+i*16))
		}
		if hud.Message != "" {
			dc.DrawStringAnchored(hud.Message, float64(cam.Width)/2, 90, 0.5, 0.5)
		}
		for i, line := range hud.DebugLines() {
			dc.DrawString(line, float64(cam.Width)-220, float64(20+i*16))
		}
	}
	return dc.Image()
}

// Thumbnail 按宽度等比缩小图片，width 不小于原图时原样返回
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
