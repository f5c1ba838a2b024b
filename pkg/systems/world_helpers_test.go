package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
)

// testWorld 组装一套完整的系统，供各系统测试使用
type testWorld struct {
	cfg        *config.GameConfig
	em         *ecs.EntityManager
	registry   *entities.Registry
	timers     *TimerService
	state      *game.RunState
	cues       *game.CueQueue
	playerID   ecs.EntityID
	difficulty *DifficultySystem
	spawner    *SpawnSystem
	movement   *MovementSystem
	combo      *ComboSystem
	powerUps   *PowerUpSystem
	health     *HealthSystem
	boss       *BossSystem
	collision  *CollisionSystem
}

func newTestWorld(t *testing.T, seed int64) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(seed))

	w := &testWorld{
		cfg:      cfg,
		em:       em,
		registry: entities.NewRegistry(em),
		timers:   NewTimerService(),
		state:    game.NewRunState(cfg.Player.MaxHealth),
		cues:     game.NewCueQueue(),
	}
	w.playerID = entities.NewPlayerEntity(em, cfg)
	w.difficulty = NewDifficultySystem(cfg.Difficulty, w.state)
	w.spawner = NewSpawnSystem(cfg, w.timers, w.registry, w.difficulty, w.state, rng)
	w.movement = NewMovementSystem(cfg.Player, w.registry, w.state, w.playerID)
	w.combo = NewComboSystem(cfg.Combo, w.timers, w.state, w.cues, nil)
	w.powerUps = NewPowerUpSystem(cfg.PowerUps, w.timers, w.state, w.cues)
	w.health = NewHealthSystem(em, w.playerID, w.timers, w.state, w.cues)
	w.boss = NewBossSystem(cfg, w.timers, w.registry, w.state, w.cues, rng, w.playerID)
	w.collision = NewCollisionSystem(cfg.Player, w.registry, w.state, w.playerID, w.combo, w.powerUps, w.health)
	return w
}

// dropOnPlayer 在玩家位置放一个物体（下一次碰撞检测必然命中）
func (w *testWorld) dropOnPlayer(spec entities.SpawnSpec) ecs.EntityID {
	spec.X = w.cfg.Player.StartX
	spec.Y = w.cfg.Player.StartY
	if spec.Width == 0 {
		spec.Width, spec.Height = 24, 24
	}
	return w.registry.Spawn(spec)
}

func (w *testWorld) hasCue(t game.CueType) bool {
	for _, c := range w.cues.Drain() {
		if c.Type == t {
			return true
		}
	}
	return false
}
