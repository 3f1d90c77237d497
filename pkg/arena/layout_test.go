package arena

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/types"
)

func newTestLayout(size float64) *Layout {
	cfg := config.DefaultGameplayConfig()
	return NewLayout(cfg.Arena, cfg.Lobby, size)
}

func TestLayoutApply(t *testing.T) {
	l := newTestLayout(40)

	if l.Half != 20 {
		t.Errorf("Half: expected 20, got %v", l.Half)
	}
	if l.EnemyGate != types.V(0, -18.8) {
		t.Errorf("EnemyGate: got %+v", l.EnemyGate)
	}
	if l.SouthGate != types.V(0, 18.8) {
		t.Errorf("SouthGate: got %+v", l.SouthGate)
	}
	if l.SpawnBounds != (Bounds{MinX: -16, MaxX: 16, MinZ: -16, MaxZ: 16}) {
		t.Errorf("SpawnBounds: got %+v", l.SpawnBounds)
	}
	if math.Abs(l.CorridorCenterZ-43.8) > 1e-9 {
		t.Errorf("CorridorCenterZ: expected 43.8, got %v", l.CorridorCenterZ)
	}
	if math.Abs(l.LobbyOrigin.Z-85.8) > 1e-9 {
		t.Errorf("LobbyOrigin.Z: expected 85.8, got %v", l.LobbyOrigin.Z)
	}
}

func TestLayoutApplyReturnsLobbyDelta(t *testing.T) {
	l := newTestLayout(40)
	before := l.LobbyOrigin

	delta := l.Apply(55)
	if math.Abs(delta.Z-7.5) > 1e-9 || delta.X != 0 {
		t.Errorf("delta: expected (0, 7.5), got %+v", delta)
	}
	if got := before.Add(delta); math.Abs(got.Z-l.LobbyOrigin.Z) > 1e-9 {
		t.Errorf("old origin + delta should equal new origin, got %v want %v", got.Z, l.LobbyOrigin.Z)
	}

	if delta := l.Apply(55); delta != (types.Vec3{}) {
		t.Errorf("same size should produce zero delta, got %+v", delta)
	}
}

func TestLayoutZonesDoNotOverlap(t *testing.T) {
	for _, size := range []float64{40, 55, 70} {
		l := newTestLayout(size)
		lobby := l.LobbyBounds()
		if lobby.MinZ <= l.CorridorEndZ() {
			t.Errorf("size %v: lobby starts at %v before corridor end %v", size, lobby.MinZ, l.CorridorEndZ())
		}
		if l.SouthGate.Z >= l.CorridorCenterZ {
			t.Errorf("size %v: corridor center %v is not south of the gate", size, l.CorridorCenterZ)
		}
	}
}

func TestLobbyPoint(t *testing.T) {
	l := newTestLayout(40)
	p := l.LobbyPoint(config.Offset{X: -7.6, Z: -4})
	if math.Abs(p.X+7.6) > 1e-9 || math.Abs(p.Z-(l.LobbyOrigin.Z-4)) > 1e-9 {
		t.Errorf("LobbyPoint: got %+v", p)
	}
	if !l.InLobby(p) {
		t.Error("upgrade pad should be inside the lobby")
	}
	if l.InLobby(l.PlayerSpawn) {
		t.Error("player spawn should not be inside the lobby")
	}
}

func TestClampToArena(t *testing.T) {
	l := newTestLayout(40)
	p := l.ClampToArena(types.V(100, -100))
	if p.X != 19 || p.Z != -19 {
		t.Errorf("ClampToArena: expected (19, -19), got %+v", p)
	}
	if !l.OutOfArena(types.V(20.5, 0)) {
		t.Error("x=20.5 should be out of a size-40 arena")
	}
	if l.OutOfArena(types.V(20, 0)) {
		t.Error("x=20 is on the boundary and should not count as out")
	}
}

func TestRandomSpawnPositionInBounds(t *testing.T) {
	l := newTestLayout(70)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		p := l.RandomSpawnPosition(rng)
		if !l.SpawnBounds.Contains(p) {
			t.Fatalf("position %+v outside spawn bounds %+v", p, l.SpawnBounds)
		}
	}
}

func TestFloorBounds(t *testing.T) {
	l := newTestLayout(40)
	arenaFloor, corridor, lobby := l.FloorBounds()

	if arenaFloor != (Bounds{MinX: -20, MaxX: 20, MinZ: -20, MaxZ: 20}) {
		t.Errorf("arena floor: got %+v", arenaFloor)
	}
	if corridor.MinX != -6 || corridor.MaxX != 6 {
		t.Errorf("corridor width: got %+v", corridor)
	}
	if math.Abs(corridor.MinZ-18.8) > 1e-9 || math.Abs(corridor.MaxZ-68.8) > 1e-9 {
		t.Errorf("corridor span: got %v..%v, want 18.8..68.8", corridor.MinZ, corridor.MaxZ)
	}
	if math.Abs(lobby.MinZ-70.8) > 1e-9 || math.Abs(lobby.MaxZ-100.8) > 1e-9 {
		t.Errorf("lobby span: got %v..%v, want 70.8..100.8", lobby.MinZ, lobby.MaxZ)
	}
	if !lobby.Contains(l.LobbyOrigin) {
		t.Error("lobby floor should contain its origin")
	}
}
