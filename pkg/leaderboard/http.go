package leaderboard

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// 接口路径
const (
	SubmitScorePath    = "/api/submitScore"
	GetLeaderboardPath = "/api/getLeaderboard"
	LiveFeedPath       = "/api/leaderboard/ws"
)

// maxBodyBytes 提交请求体上限
const maxBodyBytes = 4 << 10

// HTTPHandlerConfig HTTP 接口配置
type HTTPHandlerConfig struct {
	Logger *log.Logger
	TopN   int
	// Hub 非 nil 时挂载 websocket 实时推送，并在分数刷新时广播
	Hub *Hub
}

type submitRequest struct {
	GroupID  string          `json:"groupId"`
	PlayerID string          `json:"playerId"`
	Score    json.RawMessage `json:"score"`
}

type submitResponse struct {
	Success bool `json:"success"`
}

type leaderboardResponse struct {
	Leaderboard []Entry `json:"leaderboard"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPHandler 创建排行榜 HTTP 处理器
//
//	POST /api/submitScore         {groupId, playerId, score} -> {success: true}
//	GET  /api/getLeaderboard?groupId=xxx                    -> {leaderboard: [{playerId, score}]}
//	GET  /api/leaderboard/ws?groupId=xxx                    (websocket，需要 Hub)
//	GET  /health
func NewHTTPHandler(store *Store, cfg HTTPHandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc(SubmitScorePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req submitRequest
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			logger.Printf("[Leaderboard] submitScore read error: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
		}

		score := ParseScore(req.Score)
		entry, improved, err := store.Submit(req.GroupID, req.PlayerID, score)
		if err != nil {
			if errors.Is(err, ErrMissingGroup) || errors.Is(err, ErrMissingPlayer) {
				writeError(w, http.StatusBadRequest, "Missing groupId or playerId")
				return
			}
			logger.Printf("[Leaderboard] submitScore error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		if improved {
			logger.Printf("[Leaderboard] %s/%s best=%d", strings.TrimSpace(req.GroupID), entry.PlayerID, entry.Score)
			if cfg.Hub != nil {
				cfg.Hub.Broadcast(strings.TrimSpace(req.GroupID))
			}
		}
		writeJSON(w, http.StatusOK, submitResponse{Success: true})
	})

	mux.HandleFunc(GetLeaderboardPath, func(w http.ResponseWriter, r *http.Request) {
		groupID := strings.TrimSpace(r.URL.Query().Get("groupId"))
		if groupID == "" {
			writeError(w, http.StatusBadRequest, "Missing groupId")
			return
		}

		entries, err := store.Top(groupID, topN)
		if err != nil {
			logger.Printf("[Leaderboard] getLeaderboard error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if entries == nil {
			entries = []Entry{}
		}
		writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
	})

	if cfg.Hub != nil {
		mux.HandleFunc(LiveFeedPath, cfg.Hub.ServeWS)
	}

	return mux
}

// ParseScore 解析客户端提交的分数
//
// 数字取整数部分，字符串取开头的整数部分（"120abc" -> 120），
// 缺失、非数字、负数、非有限值都按 0 处理。
func ParseScore(raw json.RawMessage) int {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return clampScore(num)
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return parseLeadingInt(str)
	}
	return 0
}

func clampScore(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		if strings.HasPrefix(s, "-") {
			return 0
		}
		return math.MaxInt32
	}
	return clampScore(float64(n))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Leaderboard] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
