package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/entities"
	"github.com/gonewx/blockbattle/pkg/game"
	"github.com/gonewx/blockbattle/pkg/types"
)

func newTestState(t *testing.T) *game.SimulationState {
	t.Helper()
	data, err := config.LoadGameData("../../data")
	if err != nil {
		t.Fatalf("failed to load game data: %v", err)
	}
	st := game.NewSimulationState(data, rand.New(rand.NewSource(3)))
	id, err := entities.NewPlayerEntity(st.EntityManager, data, st.Layout.PlayerSpawn)
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	st.PlayerID = id
	fixtures := entities.NewLobbyFixtures(st.EntityManager, st.Layout.LobbyOrigin, st.Layout.StartWave, data.Gameplay.Lobby)
	st.DummyID = fixtures.Dummy
	return st
}

func TestCollect(t *testing.T) {
	st := newTestState(t)
	f := Collect(st)

	if f.Arena.MaxX != st.Layout.Half {
		t.Errorf("arena floor = %+v", f.Arena)
	}
	if f.GateOpen {
		t.Error("gate should be closed before the wave completes")
	}

	var player *Shape
	for i := range f.Shapes {
		if f.Shapes[i].Kind == ShapePlayer {
			player = &f.Shapes[i]
		}
	}
	if player == nil {
		t.Fatal("player shape missing")
	}
	if player.Glyph != '@' || player.Health != -1 {
		t.Errorf("player shape = %+v", *player)
	}

	t.Run("按层级排序", func(t *testing.T) {
		for i := 1; i < len(f.Shapes); i++ {
			if f.Shapes[i].Kind < f.Shapes[i-1].Kind {
				t.Fatalf("shape %d (%d) drawn before %d", i, f.Shapes[i].Kind, f.Shapes[i-1].Kind)
			}
		}
	})
}

func TestCamera(t *testing.T) {
	c := NewCamera(800, 600, 10)

	x, y := c.ToScreen(types.V(1, -2))
	if x != 410 || y != 280 {
		t.Errorf("ToScreen = (%v, %v), want (410, 280)", x, y)
	}

	t.Run("直接对准", func(t *testing.T) {
		c := NewCamera(800, 600, 10)
		c.FollowRate = 0
		c.Follow(types.V(5, 7), 0.016)
		if c.X != 5 || c.Z != 7 {
			t.Errorf("camera = (%v, %v)", c.X, c.Z)
		}
	})

	t.Run("平滑跟随不越过目标", func(t *testing.T) {
		c := NewCamera(800, 600, 10)
		for i := 0; i < 120; i++ {
			c.Follow(types.V(0, 50), 1.0/60)
			if c.Z > 50 {
				t.Fatalf("camera overshot: %v", c.Z)
			}
		}
		if math.Abs(c.Z-50) > 0.5 {
			t.Errorf("camera should settle near the target, got %v", c.Z)
		}
	})

	t.Run("适配尺寸", func(t *testing.T) {
		c := NewCamera(800, 600, 1)
		c.Fit(40, 10)
		if c.Scale != 10 {
			t.Errorf("scale = %v, want 10", c.Scale)
		}
	})
}

func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(-1) != 0 || EaseOutCubic(2) != 1 {
		t.Error("ease should clamp to [0,1]")
	}
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("EaseOutCubic(0.5) = %v, want 0.875", got)
	}
}
