// Package entities 负责创建游戏实体，并提供下落物体的注册表
package entities

import (
	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/ecs"
)

// Entity 下落物体的只读视图
type Entity struct {
	ID       ecs.EntityID
	Kind     components.ObjectKind
	Variant  components.PowerUpVariant
	X, Y     float64
	VX, VY   float64
	Width    float64
	Height   float64
	Alive    bool
	FromBoss bool
}

// SpawnSpec 生成下落物体所需的参数
type SpawnSpec struct {
	Kind     components.ObjectKind
	Variant  components.PowerUpVariant
	X, Y     float64
	VX, VY   float64
	Width    float64
	Height   float64
	FromBoss bool
}

// Registry 下落物体注册表（障碍物、核心、道具）
//
// 注册表独占这些实体：只有生成器和 Boss 系统通过 Spawn 创建，
// 只有剔除和碰撞结算通过 Cull / Remove 删除。删除是延迟的，
// 但被删除的实体会立即从遍历中消失。
type Registry struct {
	em *ecs.EntityManager
}

// NewRegistry 创建注册表，与玩家实体共享同一个 EntityManager
func NewRegistry(em *ecs.EntityManager) *Registry {
	return &Registry{em: em}
}

// EntityManager 返回底层的实体管理器
func (r *Registry) EntityManager() *ecs.EntityManager {
	return r.em
}

// Spawn 创建一个下落物体并返回其ID
// 负的 VY 会被修正为 0，下落物体不允许向上移动
func (r *Registry) Spawn(spec SpawnSpec) ecs.EntityID {
	vy := spec.VY
	if vy < 0 {
		vy = 0
	}

	id := r.em.CreateEntity()
	r.em.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	r.em.AddComponent(id, &components.VelocityComponent{VX: spec.VX, VY: vy})
	r.em.AddComponent(id, &components.CollisionComponent{Width: spec.Width, Height: spec.Height})
	r.em.AddComponent(id, &components.FallingObjectComponent{
		Kind:     spec.Kind,
		Variant:  spec.Variant,
		Alive:    true,
		FromBoss: spec.FromBoss,
	})
	return id
}

// Get 返回指定实体的视图
func (r *Registry) Get(id ecs.EntityID) (Entity, bool) {
	obj, ok := ecs.GetComponent[*components.FallingObjectComponent](r.em, id)
	if !ok {
		return Entity{}, false
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](r.em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](r.em, id)

	e := Entity{
		ID:       id,
		Kind:     obj.Kind,
		Variant:  obj.Variant,
		Alive:    obj.Alive && r.em.IsAlive(id),
		FromBoss: obj.FromBoss,
	}
	if pos != nil {
		e.X, e.Y = pos.X, pos.Y
	}
	if vel != nil {
		e.VX, e.VY = vel.VX, vel.VY
	}
	if col != nil {
		e.Width, e.Height = col.Width, col.Height
	}
	return e, true
}

// ForEach 按生成顺序遍历存活的下落物体
//
// 参数：
//   - fn: 回调，返回 false 时停止遍历
//   - kinds: 只遍历指定种类，为空时遍历全部
//
// 回调中调用 Remove 是安全的，被删除的实体不会再被访问
func (r *Registry) ForEach(fn func(Entity) bool, kinds ...components.ObjectKind) {
	ids := ecs.GetEntitiesWith1[*components.FallingObjectComponent](r.em)
	for _, id := range ids {
		e, ok := r.Get(id)
		if !ok || !e.Alive {
			continue
		}
		if !matchKind(e.Kind, kinds) {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Count 返回存活的指定种类物体数量
func (r *Registry) Count(kinds ...components.ObjectKind) int {
	n := 0
	r.ForEach(func(Entity) bool {
		n++
		return true
	}, kinds...)
	return n
}

// Remove 删除一个下落物体，返回是否真的删除了（已删除的返回 false）
func (r *Registry) Remove(id ecs.EntityID) bool {
	obj, ok := ecs.GetComponent[*components.FallingObjectComponent](r.em, id)
	if !ok || !obj.Alive || !r.em.IsAlive(id) {
		return false
	}
	obj.Alive = false
	r.em.DestroyEntity(id)
	return true
}

// Cull 删除所有 y 超过 boundaryY 的物体（掉出屏幕），返回删除数量
// 重复调用是幂等的
func (r *Registry) Cull(boundaryY float64) int {
	culled := 0
	r.ForEach(func(e Entity) bool {
		if e.Y > boundaryY && r.Remove(e.ID) {
			culled++
		}
		return true
	})
	return culled
}

// Flush 清理本帧标记删除的实体
func (r *Registry) Flush() {
	r.em.RemoveMarkedEntities()
}

// Clear 删除所有下落物体（会话销毁时使用）
func (r *Registry) Clear() {
	r.ForEach(func(e Entity) bool {
		r.Remove(e.ID)
		return true
	})
	r.Flush()
}

func matchKind(kind components.ObjectKind, kinds []components.ObjectKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
