// render_snapshot 无窗口运行一段脚本化对局并把最后一帧保存为 PNG
//
// 用法：
//
//	go run ./cmd/render_snapshot -wave 3 -frames 600 -out snapshot.png -thumb 256
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/embedded"
	"github.com/gonewx/blockbattle/pkg/input"
	"github.com/gonewx/blockbattle/pkg/render"
	"github.com/gonewx/blockbattle/pkg/scenes"
)

const frameDelta = 1.0 / 60

func main() {
	dataDir := flag.String("data", "data", "data directory")
	wave := flag.Int("wave", 1, "starting wave")
	frames := flag.Int("frames", 600, "number of 1/60s frames to simulate")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "snapshot.png", "output PNG path")
	width := flag.Int("width", 800, "image width")
	height := flag.Int("height", 600, "image height")
	thumb := flag.Int("thumb", 0, "also write a thumbnail of this width (0 disables)")
	rogue := flag.Bool("rogue", false, "enable the rogue enemy")
	flag.Parse()

	embedded.Init(os.DirFS("."))
	data, err := config.LoadGameData(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	data.Weapons.SeedUpgradeCosts(rng)
	scene, err := scenes.NewArenaScene(data, rng, scenes.ArenaOptions{
		StartWave:    *wave,
		RogueEnabled: *rogue,
		Debug:        true,
		SkipArmory:   true,
	})
	if err != nil {
		log.Fatalf("Failed to create arena: %v", err)
	}
	hud := render.NewHUD(scene.Events())
	hud.Wave = scene.State().Wave.Current

	for i := 0; i < *frames; i++ {
		scene.Update(frameDelta, chase(render.Collect(scene.State()), i))
	}

	frame := render.Collect(scene.State())
	cam := render.NewCamera(*width, *height, 1)
	cam.X, cam.Z = frame.Focus.X, frame.Focus.Z
	cam.Fit(scene.State().Layout.Size, 4)
	img := render.Snapshot(frame, hud, cam)

	if err := imaging.Save(img, *out); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}
	fmt.Printf("wrote %s (wave %d, %d shapes)\n", *out, hud.Wave, len(frame.Shapes))

	if *thumb > 0 {
		ext := filepath.Ext(*out)
		path := strings.TrimSuffix(*out, ext) + "_thumb" + ext
		if err := imaging.Save(render.Thumbnail(img, *thumb), path); err != nil {
			log.Fatalf("Failed to save thumbnail: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

// chase 朝最近的敌人移动并持续攻击，场上没有敌人时走向大厅交互
func chase(f render.Frame, frame int) input.Input {
	in := input.Input{Attack: true}
	best := math.Inf(1)
	for _, s := range f.Shapes {
		if s.Kind != render.ShapeEnemy && s.Kind != render.ShapeBoss && s.Kind != render.ShapeRogue {
			continue
		}
		dx, dz := s.Pos.X-f.Focus.X, s.Pos.Z-f.Focus.Z
		if d := math.Hypot(dx, dz); d < best {
			best = d
			in.X, in.Y = input.Normalize(dx*10, dz*10)
		}
	}
	if math.IsInf(best, 1) {
		in.Attack = false
		in.Interact = frame%30 == 0
	}
	// 每隔几秒换一次武器，让快照里也能出现箭矢
	in.SwapSlot = frame%240 == 0
	return in
}
