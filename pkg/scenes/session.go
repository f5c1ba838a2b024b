package scenes

import (
	"math/rand"
	"time"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/engine"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
)

// Session 各场景共享的依赖
type Session struct {
	Config   *config.GameConfig
	Identity game.PlayerIdentity
	// Submitter 分数上报目标，可为 nil
	Submitter game.ScoreSubmitter
	// Board 排行榜来源，可为 nil（此时排行榜场景显示不可用）
	Board leaderboard.Source
	// Profile 本机档案，可为 nil
	Profile *game.ProfileManager
	// Seed 随机种子，0 表示使用当前时间
	Seed int64

	Scenes *SceneManager

	runs int
}

// NewEngine 为新的一局创建 Engine
// 固定种子时每局使用不同但可复现的种子
func (s *Session) NewEngine() *engine.Engine {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(s.runs)
	}
	s.runs++

	return engine.New(s.Config, engine.Dependencies{
		Submitter: s.Submitter,
		Rand:      rand.New(rand.NewSource(seed)),
	})
}

// RecordGame 记录一局结束并保存档案
func (s *Session) RecordGame(stats game.FinalStats) {
	if s.Profile == nil {
		return
	}
	s.Profile.RecordGame(stats.Score)
	if err := s.Profile.Save(); err != nil {
		logWarning("failed to save profile: %v", err)
	}
}

// ShowMenu 切换到主菜单
func (s *Session) ShowMenu() {
	s.Scenes.SwitchTo(NewMenuScene(s))
}

// StartRun 开始新的一局
func (s *Session) StartRun() {
	s.Scenes.SwitchTo(NewPlayScene(s))
}

// ShowLeaderboard 切换到排行榜，before 在拉取前于后台执行（可为 nil）
func (s *Session) ShowLeaderboard(before func()) {
	s.Scenes.SwitchTo(NewLeaderboardScene(s, before))
}
