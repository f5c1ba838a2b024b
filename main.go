package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gonewx/neonrun/pkg/app"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/embedded"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// gdata 应用名，决定本机档案和本地排行榜的存储目录
const appName = "neonrun"

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Path to game_config.yaml (default: embedded config)")
	groupID := flag.String("group", "", "Leaderboard group id")
	playerID := flag.String("player", "", "Player id")
	playerName := flag.String("name", "", "Player display name")
	serverURL := flag.String("server", os.Getenv("NEONRUN_SERVER"), "Leaderboard server base URL (empty: local leaderboard)")
	seed := flag.Int64("seed", 0, "Random seed (0: time based)")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	var gameConfig *config.GameConfig
	if *configPath != "" {
		cfg, err := config.LoadGameConfig(*configPath)
		if err != nil {
			log.Fatalf("配置加载失败: %v", err)
		}
		gameConfig = cfg
	}

	// 本机存储不可用时档案和本地排行榜都只保存在内存中
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Main] Warning: storage unavailable: %v", err)
		manager = nil
	}

	// 命令行给出的身份字段覆盖档案中的对应字段
	profile := game.NewProfileManager(manager)
	profile.SetIdentity(game.PlayerIdentity{GroupID: *groupID, PlayerID: *playerID, PlayerName: *playerName})
	identity := profile.Identity()

	var (
		submitter game.ScoreSubmitter
		board     leaderboard.Source
	)
	if *serverURL != "" {
		client := leaderboard.NewClient(*serverURL, &http.Client{Timeout: 5 * time.Second})
		submitter = client.Submitter(identity)
		board = client
	} else {
		store := leaderboard.NewStore(manager)
		submitter = leaderboard.StoreSubmitter(store, identity)
		board = store
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		GameConfig: gameConfig,
		Identity:   identity,
		Submitter:  submitter,
		Board:      board,
		Profile:    profile,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Neon Run")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
