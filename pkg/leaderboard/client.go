package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gonewx/neonrun/pkg/game"
)

// Client 排行榜服务的 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建客户端，baseURL 形如 "http://localhost:8080"
// httpClient 为 nil 时使用 10 秒超时的默认客户端
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit 提交一次分数
func (c *Client) Submit(ctx context.Context, groupID, playerID string, score int) error {
	body, err := json.Marshal(map[string]any{
		"groupId":  groupID,
		"playerId": playerID,
		"score":    game.NormalizeScore(score),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitScorePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Fetch 获取分组排行榜
func (c *Client) Fetch(ctx context.Context, groupID string) ([]Entry, error) {
	u := c.baseURL + GetLeaderboardPath + "?groupId=" + url.QueryEscape(groupID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var payload leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return payload.Leaderboard, nil
}

// Submitter 绑定玩家身份，得到可以交给 engine 的分数上报器
func (c *Client) Submitter(id game.PlayerIdentity) game.ScoreSubmitter {
	id = id.Normalize()
	return game.ScoreSubmitterFunc(func(ctx context.Context, score int) error {
		return c.Submit(ctx, id.GroupID, id.PlayerID, score)
	})
}

// StoreSubmitter 直接写入本地 Store 的上报器（没有配置服务地址时使用）
func StoreSubmitter(store *Store, id game.PlayerIdentity) game.ScoreSubmitter {
	id = id.Normalize()
	return game.ScoreSubmitterFunc(func(_ context.Context, score int) error {
		_, _, err := store.Submit(id.GroupID, id.PlayerID, score)
		return err
	})
}

func statusError(resp *http.Response) error {
	var e errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return fmt.Errorf("leaderboard server returned %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("leaderboard server returned %d", resp.StatusCode)
}
