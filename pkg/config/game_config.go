package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 窗口逻辑尺寸（与游戏区域一致）
const (
	GameWindowWidth  = 400
	GameWindowHeight = 600
)

// GameConfig 游戏数值配置
//
// 所有时间字段单位为毫秒，速度单位为像素/秒。
// 从 YAML 加载时以 DefaultGameConfig() 为基础，文件中未出现的字段保持默认值。
type GameConfig struct {
	TickRate   int              `yaml:"tickRate"` // 每秒逻辑帧数
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Player     PlayerConfig     `yaml:"player"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Combo      ComboConfig      `yaml:"combo"`
	PowerUps   PowerUpConfig    `yaml:"powerUps"`
	Boss       BossConfig       `yaml:"boss"`
}

// PlayfieldConfig 游戏区域
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	CullY  float64 `yaml:"cullY"` // y 超过此值的物体被剔除
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	StartX         float64 `yaml:"startX"`
	StartY         float64 `yaml:"startY"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	BaseSpeed      float64 `yaml:"baseSpeed"`
	BoostSpeed     float64 `yaml:"boostSpeed"`
	MaxHealth      int     `yaml:"maxHealth"`
	ObstacleDamage int     `yaml:"obstacleDamage"`
}

// SizeConfig 碰撞盒尺寸
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig 常规生成参数
type SpawnConfig struct {
	MinX           int        `yaml:"minX"`
	MaxX           int        `yaml:"maxX"`
	Y              float64    `yaml:"y"`
	ItemSpeedBonus float64    `yaml:"itemSpeedBonus"` // 核心/道具比障碍物快的量
	ObstacleSize   SizeConfig `yaml:"obstacleSize"`
	CoreSize       SizeConfig `yaml:"coreSize"`
	PowerUpSize    SizeConfig `yaml:"powerUpSize"`
}

// DifficultyConfig 难度曲线参数
//
// spawnDelayMs = max(MinDelayMs, BaseDelayMs - floor(score/DelayScoreStep)*DelayStepMs)
// fallSpeed    = BaseFallSpeed + floor(score/FallScoreStep)*FallSpeedStep
type DifficultyConfig struct {
	BaseDelayMs    int     `yaml:"baseDelayMs"`
	MinDelayMs     int     `yaml:"minDelayMs"`
	DelayStepMs    int     `yaml:"delayStepMs"`
	DelayScoreStep int     `yaml:"delayScoreStep"`
	BaseFallSpeed  float64 `yaml:"baseFallSpeed"`
	FallSpeedStep  float64 `yaml:"fallSpeedStep"`
	FallScoreStep  int     `yaml:"fallScoreStep"`
}

// ComboConfig 连击参数
type ComboConfig struct {
	DecayMs  int `yaml:"decayMs"`
	BaseGain int `yaml:"baseGain"`
	StepGain int `yaml:"stepGain"` // 每层连击增加的分数（10 × 0.2）
}

// PowerUpConfig 道具持续时间
type PowerUpConfig struct {
	BoostMs  int `yaml:"boostMs"`
	ShieldMs int `yaml:"shieldMs"`
}

// BossConfig Boss 事件参数
type BossConfig struct {
	Milestone  int          `yaml:"milestone"`
	DurationMs int          `yaml:"durationMs"`
	Bonus      int          `yaml:"bonus"`
	Meteor     MeteorConfig `yaml:"meteor"`
	Laser      LaserConfig  `yaml:"laser"`
	Drone      DroneConfig  `yaml:"drone"`
}

// MeteorConfig 流星雨
type MeteorConfig struct {
	Count      int     `yaml:"count"`
	IntervalMs int     `yaml:"intervalMs"`
	Speed      float64 `yaml:"speed"`
	Scale      float64 `yaml:"scale"`
}

// LaserConfig 激光墙
type LaserConfig struct {
	Count   int     `yaml:"count"`
	X       float64 `yaml:"x"`
	Spacing float64 `yaml:"spacing"`
	Speed   float64 `yaml:"speed"`
	ScaleX  float64 `yaml:"scaleX"`
	ScaleY  float64 `yaml:"scaleY"`
}

// DroneConfig 无人机攻击
type DroneConfig struct {
	Count      int     `yaml:"count"`
	IntervalMs int     `yaml:"intervalMs"`
	Speed      float64 `yaml:"speed"`
	MaxDrift   int     `yaml:"maxDrift"`
	Scale      float64 `yaml:"scale"`
}

// DefaultGameConfig 返回默认配置（与网页版手感一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TickRate: 60,
		Playfield: PlayfieldConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
			CullY:  650,
		},
		Player: PlayerConfig{
			StartX:         200,
			StartY:         520,
			Width:          32,
			Height:         48,
			BaseSpeed:      160,
			BoostSpeed:     300,
			MaxHealth:      100,
			ObstacleDamage: 20,
		},
		Spawn: SpawnConfig{
			MinX:           50,
			MaxX:           350,
			Y:              -50,
			ItemSpeedBonus: 20,
			ObstacleSize:   SizeConfig{Width: 32, Height: 32},
			CoreSize:       SizeConfig{Width: 24, Height: 24},
			PowerUpSize:    SizeConfig{Width: 24, Height: 24},
		},
		Difficulty: DifficultyConfig{
			BaseDelayMs:    2000,
			MinDelayMs:     500,
			DelayStepMs:    200,
			DelayScoreStep: 100,
			BaseFallSpeed:  100,
			FallSpeedStep:  20,
			FallScoreStep:  50,
		},
		Combo: ComboConfig{
			DecayMs:  3000,
			BaseGain: 10,
			StepGain: 2,
		},
		PowerUps: PowerUpConfig{
			BoostMs:  5000,
			ShieldMs: 8000,
		},
		Boss: BossConfig{
			Milestone:  500,
			DurationMs: 15000,
			Bonus:      100,
			Meteor:     MeteorConfig{Count: 21, IntervalMs: 400, Speed: 250, Scale: 1.5},
			Laser:      LaserConfig{Count: 3, X: 200, Spacing: 120, Speed: 180, ScaleX: 2, ScaleY: 0.25},
			Drone:      DroneConfig{Count: 16, IntervalMs: 500, Speed: 200, MaxDrift: 120, Scale: 1.2},
		},
	}
}

// Ms 将毫秒转换为 time.Duration
func Ms(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// TickDuration 返回固定时间步长
func (c *GameConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// ParseGameConfig 从 YAML 数据解析游戏配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// LoadGameConfigOrDefault 加载配置文件，文件不存在时退回默认配置
// 文件存在但内容非法时仍返回错误
func LoadGameConfigOrDefault(filePath string) (*GameConfig, error) {
	cfg, err := LoadGameConfig(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[Config] Warning: %s not found, using default game config", filePath)
			return DefaultGameConfig(), nil
		}
		return nil, err
	}
	log.Printf("[Config] Loaded game config from %s", filePath)
	return cfg, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tickRate must be > 0, got %d", cfg.TickRate)
	}
	if cfg.Playfield.Width <= 0 || cfg.Playfield.Height <= 0 {
		return fmt.Errorf("playfield size must be positive, got %.0fx%.0f", cfg.Playfield.Width, cfg.Playfield.Height)
	}
	if cfg.Playfield.CullY < cfg.Playfield.Height {
		return fmt.Errorf("playfield.cullY (%.0f) must be >= playfield.height (%.0f)", cfg.Playfield.CullY, cfg.Playfield.Height)
	}

	if cfg.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be > 0, got %d", cfg.Player.MaxHealth)
	}
	if cfg.Player.ObstacleDamage <= 0 {
		return fmt.Errorf("player.obstacleDamage must be > 0, got %d", cfg.Player.ObstacleDamage)
	}
	if cfg.Player.BaseSpeed <= 0 || cfg.Player.BoostSpeed < cfg.Player.BaseSpeed {
		return fmt.Errorf("player speeds invalid: base=%.0f boost=%.0f", cfg.Player.BaseSpeed, cfg.Player.BoostSpeed)
	}

	if cfg.Spawn.MinX > cfg.Spawn.MaxX {
		return fmt.Errorf("spawn.minX (%d) must be <= spawn.maxX (%d)", cfg.Spawn.MinX, cfg.Spawn.MaxX)
	}

	d := cfg.Difficulty
	if d.MinDelayMs <= 0 || d.BaseDelayMs < d.MinDelayMs {
		return fmt.Errorf("difficulty delays invalid: base=%d min=%d", d.BaseDelayMs, d.MinDelayMs)
	}
	if d.DelayStepMs < 0 || d.FallSpeedStep < 0 {
		return fmt.Errorf("difficulty steps must be >= 0")
	}
	if d.DelayScoreStep <= 0 || d.FallScoreStep <= 0 {
		return fmt.Errorf("difficulty score steps must be > 0")
	}

	if cfg.Combo.DecayMs <= 0 {
		return fmt.Errorf("combo.decayMs must be > 0, got %d", cfg.Combo.DecayMs)
	}
	if cfg.PowerUps.BoostMs <= 0 || cfg.PowerUps.ShieldMs <= 0 {
		return fmt.Errorf("power-up durations must be > 0")
	}

	b := cfg.Boss
	if b.Milestone <= 0 {
		return fmt.Errorf("boss.milestone must be > 0, got %d", b.Milestone)
	}
	if b.DurationMs <= 0 {
		return fmt.Errorf("boss.durationMs must be > 0, got %d", b.DurationMs)
	}
	if b.Meteor.IntervalMs <= 0 || b.Drone.IntervalMs <= 0 {
		return fmt.Errorf("boss pattern intervals must be > 0")
	}
	if b.Drone.MaxDrift < 0 {
		return fmt.Errorf("boss.drone.maxDrift must be >= 0, got %d", b.Drone.MaxDrift)
	}

	return nil
}
