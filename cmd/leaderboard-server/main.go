// leaderboard-server 排行榜服务
//
// 提供分数提交、排行榜查询和 websocket 实时推送。
// 配置来自 .env 文件和环境变量（见 config.LoadServerConfig）。
//
// 使用方法：
//
//	go run ./cmd/leaderboard-server
//	go run ./cmd/leaderboard-server --env deploy/prod.env
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/leaderboard"
	"github.com/quasilyte/gdata/v2"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envFile := flag.String("env", "", "Path to .env file (default: ./.env if present)")
	memoryOnly := flag.Bool("memory", false, "Keep the leaderboard in memory only")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.LoadServerConfig(envFiles...)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *memoryOnly); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.ServerConfig, memoryOnly bool) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var manager *gdata.Manager
	if !memoryOnly {
		m, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			// 存储不可用时退回内存模式，服务照常启动
			logger.Printf("[Server] Warning: storage unavailable (%v), running memory-only", err)
		} else {
			manager = m
		}
	}

	store := leaderboard.NewStore(manager)
	hub := leaderboard.NewHub(store, leaderboard.HubConfig{
		Logger:        logger,
		AllowedOrigin: cfg.AllowedOrigin,
		TopN:          cfg.TopN,
	})
	handler := leaderboard.NewHTTPHandler(store, leaderboard.HTTPHandlerConfig{
		Logger: logger,
		TopN:   cfg.TopN,
		Hub:    hub,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("[Server] listening on %s (top %d)", srv.Addr, cfg.TopN)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Printf("[Server] shutting down")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
