package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Z float64
}

type testHealthComponent struct {
	Current float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("Created entity must never equal InvalidEntity")
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestGenericAddAndGet(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 3, Z: -4})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Position component should be found")
	}
	if pos.X != 3 || pos.Z != -4 {
		t.Errorf("Expected (3, -4), got (%f, %f)", pos.X, pos.Z)
	}

	// 泛型与反射接口必须指向同一个组件槽
	raw, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found || raw.(*testPositionComponent) != pos {
		t.Error("Reflection lookup should return the same pointer as the generic lookup")
	}

	if _, ok := GetComponent[*testHealthComponent](em, id); ok {
		t.Error("Health component should not be found")
	}
}

func TestGenericHasAndRemove(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testHealthComponent{Current: 10})

	if !HasComponent[*testHealthComponent](em, id) {
		t.Fatal("Should have health component after adding")
	}

	RemoveComponent[*testHealthComponent](em, id)
	if HasComponent[*testHealthComponent](em, id) {
		t.Error("Health component should be gone after RemoveComponent")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTagComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记不应产生重复删除

	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Destroy mark should be cleared after cleanup")
	}
}

func TestDestroyEntityNow(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.DestroyEntity(id)
	em.DestroyEntityNow(id)

	if em.Exists(id) {
		t.Error("Entity should be removed immediately")
	}
	// 已立即删除的实体再走一次延迟清理也必须安全
	em.RemoveMarkedEntities()
}

func TestQueriesAreOrderedByID(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testHealthComponent{Current: 1})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testHealthComponent](em)
	if len(got) != len(want) {
		t.Fatalf("Expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Query result not ordered: index %d expected %d, got %d", i, want[i], got[i])
		}
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 50 {
		t.Errorf("Expected 50 entities with Position, got %d", len(all))
	}

	none := GetEntitiesWith3[*testPositionComponent, *testHealthComponent, *testTagComponent](em)
	if len(none) != 0 {
		t.Errorf("Expected 0 entities with all three components, got %d", len(none))
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(99), &testTagComponent{})

	if em.Exists(EntityID(99)) {
		t.Error("Adding a component must not create an entity implicitly")
	}
}
