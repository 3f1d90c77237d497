package systems

import (
	"testing"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{Window: 0.6})

	if expired := system.Update(0.25); expired != 0 {
		t.Errorf("expired = %d, want 0", expired)
	}
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.Elapsed != 0.25 || lifetime.Expired {
		t.Errorf("lifetime = %+v", lifetime)
	}

	if expired := system.Update(0.5); expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}
	if !lifetime.Expired || !em.IsMarkedForDestroy(id) {
		t.Error("entity should be expired and marked")
	}

	// 已标记的实体不会重复计数
	if expired := system.Update(0.5); expired != 0 {
		t.Errorf("marked entity counted again: %d", expired)
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("expired entity should be removed")
	}
}

func TestMultipleEntitiesWithDifferentLifetimes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id1 := em.CreateEntity()
	em.AddComponent(id1, &components.LifetimeComponent{Window: 5.0})
	id2 := em.CreateEntity()
	em.AddComponent(id2, &components.LifetimeComponent{Window: 10.0})

	system.Update(7.0)
	em.RemoveMarkedEntities()

	if em.Exists(id1) {
		t.Error("entity 1 should be removed")
	}
	if !em.Exists(id2) {
		t.Error("entity 2 should still exist")
	}
}

func TestDefeatedEnemyRemovedAfterDeathWindow(t *testing.T) {
	w := newTestWorld(t)
	id := w.spawner.SpawnEnemy(types.EnemySmall, types.V(3, 3))
	w.defeat(id)
	lifetime := NewLifetimeSystem(w.state.EntityManager)

	lifetime.Update(0.5)
	w.state.EntityManager.RemoveMarkedEntities()
	if !w.state.EntityManager.Exists(id) {
		t.Fatal("enemy removed before the death window ended")
	}
	pose, _ := ecs.GetComponent[*components.PoseComponent](w.state.EntityManager, id)
	if pose.Pose != components.PoseFallen {
		t.Errorf("pose = %v, want fallen", pose.Pose)
	}

	lifetime.Update(0.2)
	w.state.EntityManager.RemoveMarkedEntities()
	if w.state.EntityManager.Exists(id) {
		t.Error("enemy still present after the death window")
	}
}
