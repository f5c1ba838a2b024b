// neonrun-tty 终端版 Neon Run
//
// 与桌面版共用同一个游戏核心，画面用字符绘制。
//
// 使用方法：
//
//	go run ./cmd/neonrun-tty --player alice --group class-a
//	go run ./cmd/neonrun-tty --server http://localhost:8080 --player alice
//
// 方向键 / A D / H L 移动，空格停止，M 静音，Ctrl+C 退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
	"github.com/gonewx/neonrun/pkg/tty"
)

func main() {
	configPath := flag.String("config", "data/game_config.yaml", "Path to game_config.yaml")
	groupID := flag.String("group", "", "Leaderboard group id")
	playerID := flag.String("player", "", "Player id")
	playerName := flag.String("name", "", "Player display name")
	serverURL := flag.String("server", os.Getenv("NEONRUN_SERVER"), "Leaderboard server base URL (empty: in-memory leaderboard)")
	seed := flag.Int64("seed", 0, "Random seed (0: time based)")
	mute := flag.Bool("mute", false, "Disable sound")
	logFile := flag.String("log", "", "Write logs to this file (terminal output is used by the game)")
	flag.Parse()

	// 终端被游戏画面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	gameConfig, err := config.LoadGameConfigOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	identity := game.PlayerIdentity{GroupID: *groupID, PlayerID: *playerID, PlayerName: *playerName}.Normalize()

	var (
		submitter game.ScoreSubmitter
		board     leaderboard.Source
	)
	if *serverURL != "" {
		client := leaderboard.NewClient(*serverURL, &http.Client{Timeout: 5 * time.Second})
		submitter = client.Submitter(identity)
		board = client
	} else {
		store := leaderboard.NewStore(nil)
		submitter = leaderboard.StoreSubmitter(store, identity)
		board = store
	}

	var sound *tty.Sound
	if !*mute {
		sound = tty.NewSound()
		if err := sound.Initialize(); err != nil {
			// 没有音频设备时照常运行
			log.Printf("[Main] Audio initialization failed: %v", err)
		}
		defer sound.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tty.Run(ctx, screen, tty.Config{
		Game:      gameConfig,
		Identity:  identity,
		Submitter: submitter,
		Board:     board,
		Seed:      *seed,
		Sound:     sound,
	}); err != nil {
		log.Printf("[Main] %v", err)
	}
}
