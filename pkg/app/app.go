// Package app 提供游戏应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	sfx "github.com/gonewx/blockbattle/internal/audio"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/debugserver"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/input"
	"github.com/gonewx/blockbattle/pkg/render"
	"github.com/gonewx/blockbattle/pkg/scenes"
	"github.com/gonewx/blockbattle/pkg/utils"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 1024
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 768

	// fixedDelta 每个 tick 的模拟步长
	fixedDelta = 1.0 / 60.0

	appName = "blockbattle"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DataDir 游戏数据目录，"data" 使用嵌入数据
	DataDir string
	// StartWave 第一次开波的波次
	StartWave int
	// Rogue 强制开启流氓机器人，否则使用保存的设置
	Rogue bool
	// Debug 强制显示调试计数，否则使用保存的设置
	Debug bool
	// DebugAddr 调试 HTTP 服务监听地址，为空不启动
	DebugAddr string
	// SkipArmory 跳过开局军械库
	SkipArmory bool
	// Seed 随机种子，0 使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.ArenaScene
	hud      *render.HUD
	camera   *render.Camera
	poller   *utils.Poller
	settings *game.SettingsManager
	sounds   *sfx.CuePlayer
	debug    *debugserver.Server

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	messageAge float64 // 当前横幅已显示时间，用于淡入
	lastMsg    string
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	data, err := config.LoadGameData(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	data.Weapons.SeedUpgradeCosts(rng)

	if dir, err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if dir != "" {
		log.Printf("[App] Storage directory: %s", dir)
	}
	settings := game.NewSettingsManager(game.OpenStorage(appName))
	prefs := settings.Settings()

	scene, err := scenes.NewArenaScene(data, rng, scenes.ArenaOptions{
		StartWave:    cfg.StartWave,
		RogueEnabled: cfg.Rogue || prefs.RogueEnabled,
		Debug:        cfg.Debug || prefs.DebugHUD,
		SkipArmory:   cfg.SkipArmory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}

	a := &App{
		scene:    scene,
		camera:   render.NewCamera(ScreenWidth, ScreenHeight, 18),
		poller:   utils.NewPoller(),
		settings: settings,
		verbose:  cfg.Verbose,
	}
	// HUD 需要收到开局时的军械库事件，这里补一次当前阶段
	a.hud = render.NewHUD(scene.Events())
	a.hud.Wave = scene.State().Wave.Current
	if scene.ArmoryOpen() {
		a.hud.ArmoryStage = scene.State().Armory
		a.hud.ArmoryOptions = scene.ArmoryOptions()
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sfx.SampleRate)
	a.sounds = sfx.NewCuePlayer(audioContext, settings)
	a.sounds.Preload()
	a.sounds.Attach(scene.Events())
	log.Printf("[App] CuePlayer initialized")

	if cfg.DebugAddr != "" {
		a.debug = debugserver.New(cfg.DebugAddr, scene)
		a.debug.Start()
	}

	if prefs.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	keys := a.poller.Keys
	if keys.JustPressed(input.ActionFullscreen) {
		a.toggleFullscreen()
	}

	switch {
	case a.scene.ArmoryOpen():
		a.updateArmory(keys)
	case a.hud.GameOver:
		if keys.JustPressed(input.ActionRetry) {
			a.scene.Retry()
		} else if keys.JustPressed(input.ActionConfirm) {
			a.scene.ReturnToArmory()
		}
	default:
		if keys.JustPressed(input.ActionPause) {
			a.scene.TogglePause()
		}
		if keys.JustPressed(input.ActionRetry) {
			a.scene.Retry()
		}
		if keys.JustPressed(input.ActionRogue) {
			enabled := a.scene.ToggleRogue()
			a.settings.SetRogueEnabled(enabled)
			a.saveSettings()
		}
	}

	in := a.poller.Poll()
	a.scene.Update(fixedDelta, in)

	a.camera.Follow(a.scene.State().PlayerPosition(), fixedDelta)
	if a.hud.Message != a.lastMsg {
		a.lastMsg = a.hud.Message
		a.messageAge = 0
	}
	a.messageAge += fixedDelta
	return nil
}

// updateArmory 数字键选择武器，Enter 确认，Backspace 返回
func (a *App) updateArmory(keys *utils.EbitenKeys) {
	options := a.scene.ArmoryOptions()
	for i := range options {
		if i > 8 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			a.scene.ArmorySelect(options[i])
		}
	}
	if keys.JustPressed(input.ActionConfirm) {
		a.scene.ArmoryConfirm()
	}
	if keys.JustPressed(input.ActionBack) {
		a.scene.ArmoryBack()
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	frame := render.Collect(a.scene.State())
	drawFrame(screen, a.camera, frame)
	drawHUD(screen, a.hud, render.EaseOutCubic(a.messageAge/0.25))
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 关闭调试服务并保存设置
func (a *App) Close() {
	if a.debug != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.debug.Shutdown(ctx); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
