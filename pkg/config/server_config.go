package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 排行榜服务使用的环境变量
const (
	EnvServerAddr    = "NEONRUN_ADDR"
	EnvAppName       = "NEONRUN_APP_NAME"
	EnvTopN          = "NEONRUN_TOP_N"
	EnvAllowedOrigin = "NEONRUN_ALLOWED_ORIGIN"
)

// ServerConfig 排行榜服务配置
type ServerConfig struct {
	Addr          string // 监听地址，如 ":8080"
	AppName       string // gdata 应用名（决定存储目录）
	TopN          int    // 排行榜返回条数
	AllowedOrigin string // websocket 允许的 Origin，"*" 表示不限制
}

// DefaultServerConfig 返回默认服务配置
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:          ":8080",
		AppName:       "neonrun_leaderboard",
		TopN:          20,
		AllowedOrigin: "*",
	}
}

// LoadServerConfig 读取 .env 文件（可选）和环境变量
//
// 参数：
//   - envFiles: 需要加载的 .env 文件，为空时加载当前目录的 .env
//
// .env 文件不存在不是错误；已经存在的环境变量不会被 .env 覆盖
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
		log.Printf("[Config] No .env file found, using process environment")
	}

	cfg := DefaultServerConfig()

	if v := strings.TrimSpace(os.Getenv(EnvServerAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppName)); v != "" {
		cfg.AppName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTopN)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTopN, v, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s must be > 0, got %d", EnvTopN, n)
		}
		cfg.TopN = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvAllowedOrigin)); v != "" {
		cfg.AllowedOrigin = v
	}

	return cfg, nil
}
