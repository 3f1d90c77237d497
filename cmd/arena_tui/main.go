// arena_tui 在终端中运行竞技场
//
// 使用与窗口版相同的 ArenaScene，只把渲染和输入换成 tcell。
//
// 用法：
//
//	go run ./cmd/arena_tui -wave 3 -rogue
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/blockbattle/pkg/arena"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/embedded"
	"github.com/gonewx/blockbattle/pkg/input"
	"github.com/gonewx/blockbattle/pkg/render"
	"github.com/gonewx/blockbattle/pkg/scenes"
)

const frameDelta = 1.0 / 30.0

type tui struct {
	screen tcell.Screen
	scene  *scenes.ArenaScene
	hud    *render.HUD
	keys   *termKeys
	camX   float64
	camZ   float64
}

func main() {
	dataDir := flag.String("data", "data", "Game data directory")
	wave := flag.Int("wave", 1, "First wave to play")
	rogue := flag.Bool("rogue", false, "Enable the rogue robot")
	debug := flag.Bool("debug", false, "Show debug counters")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	logFile := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// 命令行工具不嵌入数据，从工作目录读取
	embedded.Init(os.DirFS("."))
	data, err := config.LoadGameData(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load game data: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	scene, err := scenes.NewArenaScene(data, rand.New(rand.NewSource(*seed)), scenes.ArenaOptions{
		StartWave:    *wave,
		RogueEnabled: *rogue,
		Debug:        *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create arena: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	t := &tui{
		screen: screen,
		scene:  scene,
		hud:    render.NewHUD(scene.Events()),
		keys:   newTermKeys(input.DefaultBindings()),
	}
	t.hud.Wave = scene.State().Wave.Current
	t.hud.ArmoryStage = scene.State().Armory
	t.hud.ArmoryOptions = scene.ArmoryOptions()
	t.run()
}

func (t *tui) run() {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Duration(frameDelta * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

// handle 处理一个终端事件，返回 false 表示退出
func (t *tui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && t.scene.ArmoryOpen() {
			if idx := int(ev.Rune() - '1'); idx >= 0 && idx < len(t.hud.ArmoryOptions) {
				t.scene.ArmorySelect(t.hud.ArmoryOptions[idx])
				return true
			}
		}
		t.keys.Press(keyName(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *tui) step() {
	k := t.keys
	switch {
	case t.scene.ArmoryOpen():
		if k.JustPressed(input.ActionConfirm) {
			t.scene.ArmoryConfirm()
		}
		if k.JustPressed(input.ActionBack) {
			t.scene.ArmoryBack()
		}
	case t.hud.GameOver:
		if k.JustPressed(input.ActionRetry) {
			t.scene.Retry()
		} else if k.JustPressed(input.ActionConfirm) {
			t.scene.ReturnToArmory()
		}
	default:
		if k.JustPressed(input.ActionPause) {
			t.scene.TogglePause()
		}
		if k.JustPressed(input.ActionRetry) {
			t.scene.Retry()
		}
		if k.JustPressed(input.ActionRogue) {
			t.scene.ToggleRogue()
		}
	}

	in := input.FromDevices(k, input.GamepadState{})
	t.scene.Update(frameDelta, in)
	k.Advance(frameDelta)
}

// project 世界坐标转终端格子，一格宽 0.5 单位、高 1 单位
func (t *tui) project(x, z float64, w, h int) (int, int) {
	col := int(math.Round((x-t.camX)*2)) + w/2
	row := int(math.Round(z-t.camZ)) + h/2
	return col, row
}

func (t *tui) draw() {
	s := t.screen
	s.Clear()
	w, h := s.Size()

	f := render.Collect(t.scene.State())
	t.camX, t.camZ = f.Focus.X, f.Focus.Z

	floor := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, b := range []arena.Bounds{f.Arena, f.Corridor, f.Lobby} {
		c0, r0 := t.project(b.MinX, b.MinZ, w, h)
		c1, r1 := t.project(b.MaxX, b.MaxZ, w, h)
		for c := c0; c <= c1; c++ {
			s.SetContent(c, r0, '-', nil, floor)
			s.SetContent(c, r1, '-', nil, floor)
		}
		for r := r0; r <= r1; r++ {
			s.SetContent(c0, r, '|', nil, floor)
			s.SetContent(c1, r, '|', nil, floor)
		}
	}
	if !f.GateOpen {
		c0, r := t.project(f.Corridor.MinX, f.Arena.MaxZ, w, h)
		c1, _ := t.project(f.Corridor.MaxX, f.Arena.MaxZ, w, h)
		shield := tcell.StyleDefault.Foreground(tcell.ColorAqua)
		for c := c0; c <= c1; c++ {
			s.SetContent(c, r, '=', nil, shield)
		}
	}

	for _, shape := range f.Shapes {
		c, r := t.project(shape.Pos.X, shape.Pos.Z, w, h)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(shape.Color.R), int32(shape.Color.G), int32(shape.Color.B)))
		if shape.Flash > 0 {
			style = style.Reverse(true)
		}
		s.SetContent(c, r, shape.Glyph, nil, style)
	}

	t.drawText(0, 0, t.hud.StatusLines())
	if t.hud.Message != "" {
		t.drawText(w/2-len(t.hud.Message)/2, 5, []string{t.hud.Message})
	}
	t.drawText(w-36, 0, t.hud.DebugLines())
	t.drawText(w/2-16, h/2-4, t.hud.ArmoryLines())
	t.drawText(w/2-16, h/2-1, t.hud.GameOverLines())
	s.Show()
}

func (t *tui) drawText(x, y int, lines []string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range lines {
		for j, r := range []rune(line) {
			t.screen.SetContent(x+j, y+i, r, nil, style)
		}
	}
}
