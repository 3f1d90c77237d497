//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	cp -r data mobile/data && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.blockbattle -o build/android/blockbattle.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/data && ebitenmobile bind -target ios -tags mobile -o build/ios/BlockBattle.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/blockbattle/pkg/app"
	"github.com/gonewx/blockbattle/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	// 移动端没有武器选择的键盘操作，直接以默认武器开局
	cfg := app.Config{
		Verbose:    true,
		StartWave:  1,
		SkipArmory: true,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
