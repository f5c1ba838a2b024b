package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 组件以指针存储，修改会反映到实体上
	pos.Y += 50
	again, _ := GetComponent[*testPositionComponent](em, id)
	if again.Y != 250 {
		t.Errorf("Expected mutation to be visible, got Y=%f", again.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPositionComponent{})

	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}

	em.RemoveComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前组件仍可读取，但实体已不再存活
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity components should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("Marked entity should be skipped by queries, got %v", got)
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyEntityTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if len(em.entitiesToDestroy) != 1 {
		t.Errorf("Expected a single pending destroy, got %d", len(em.entitiesToDestroy))
	}

	em.RemoveMarkedEntities()
	em.DestroyEntity(id) // 已删除的实体再次标记应无效果
	if len(em.entitiesToDestroy) != 0 {
		t.Errorf("Destroying a removed entity should be a no-op, got %d pending", len(em.entitiesToDestroy))
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	entities := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
}

func TestGetEntitiesWithSortedByID(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
	}

	ids := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("Query result not sorted: %v", ids)
		}
	}
}

func TestCountAndClear(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	em.CreateEntity()
	em.CreateEntity()

	em.DestroyEntity(a)
	if em.Count() != 2 {
		t.Errorf("Expected 2 live entities, got %d", em.Count())
	}

	em.Clear()
	if em.Count() != 0 {
		t.Errorf("Expected 0 entities after Clear, got %d", em.Count())
	}

	// Clear 不重置ID计数
	if id := em.CreateEntity(); id != 4 {
		t.Errorf("Expected next ID 4 after Clear, got %d", id)
	}
}
