package leaderboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	sendBufferSize = 8
)

// Update 推送给 websocket 订阅者的排行榜快照
type Update struct {
	Type        string  `json:"type"`
	GroupID     string  `json:"groupId"`
	Leaderboard []Entry `json:"leaderboard"`
}

// HubConfig 实时推送配置
type HubConfig struct {
	Logger *log.Logger
	// AllowedOrigin 允许的浏览器 Origin，"*" 或空表示不限制
	AllowedOrigin string
	TopN          int
}

type subscriber struct {
	conn    *websocket.Conn
	groupID string
	send    chan []byte
}

// Hub 按分组管理 websocket 订阅者，分数变化时推送最新排行榜
//
// 每个连接只有一个写 goroutine（gorilla/websocket 不支持并发写），
// 发送缓冲满的慢客户端会被断开，不会阻塞提交分数的请求。
type Hub struct {
	store    *Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	topN     int

	mu     sync.Mutex
	groups map[string]map[*subscriber]struct{}
	closed bool
}

// NewHub 创建推送中心
func NewHub(store *Store, cfg HubConfig) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	allowed := strings.TrimSpace(cfg.AllowedOrigin)

	return &Hub{
		store:  store,
		logger: logger,
		topN:   topN,
		groups: make(map[string]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowed == "" || allowed == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowed
			},
		},
	}
}

// ServeWS 处理 /api/leaderboard/ws?groupId=xxx
// 连接建立后立即推送一次当前排行榜
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	groupID := strings.TrimSpace(r.URL.Query().Get("groupId"))
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "Missing groupId")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("[Hub] upgrade failed for group %q: %v", groupID, err)
		return
	}

	sub := &subscriber{conn: conn, groupID: groupID, send: make(chan []byte, sendBufferSize)}
	if !h.register(sub) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go h.writeLoop(sub)

	if entries, err := h.store.Top(groupID, h.topN); err == nil {
		h.deliver(sub, h.encode(groupID, entries))
	} else {
		h.logger.Printf("[Hub] initial snapshot for %q failed: %v", groupID, err)
	}

	// 客户端不需要发消息，读循环只用来发现断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(sub)
}

// Broadcast 把分组的最新排行榜推送给所有订阅者
func (h *Hub) Broadcast(groupID string) {
	h.mu.Lock()
	n := len(h.groups[groupID])
	h.mu.Unlock()
	if n == 0 {
		return
	}

	entries, err := h.store.Top(groupID, h.topN)
	if err != nil {
		h.logger.Printf("[Hub] broadcast for %q failed: %v", groupID, err)
		return
	}
	payload := h.encode(groupID, entries)
	if payload == nil {
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.groups[groupID]))
	for sub := range h.groups[groupID] {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		h.deliver(sub, payload)
	}
}

// Subscribers 分组当前的订阅者数量
func (h *Hub) Subscribers(groupID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[groupID])
}

// Close 断开所有订阅者
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var subs []*subscriber
	for _, group := range h.groups {
		for sub := range group {
			subs = append(subs, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.conn.Close()
	}
}

func (h *Hub) register(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	group, ok := h.groups[sub.groupID]
	if !ok {
		group = make(map[*subscriber]struct{})
		h.groups[sub.groupID] = group
	}
	group[sub] = struct{}{}
	return true
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	group := h.groups[sub.groupID]
	if _, ok := group[sub]; ok {
		delete(group, sub)
		close(sub.send)
		if len(group) == 0 {
			delete(h.groups, sub.groupID)
		}
	}
	h.mu.Unlock()
	sub.conn.Close()
}

// deliver 非阻塞地放入发送队列，队列满时断开该订阅者
func (h *Hub) deliver(sub *subscriber, payload []byte) {
	if payload == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.groups[sub.groupID][sub]; !ok {
		return
	}
	select {
	case sub.send <- payload:
	default:
		h.logger.Printf("[Hub] dropping slow subscriber in group %q", sub.groupID)
		sub.conn.Close()
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	for payload := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			sub.conn.Close()
			// 继续消费直到 unregister 关闭通道
			continue
		}
	}
}

func (h *Hub) encode(groupID string, entries []Entry) []byte {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(Update{Type: "leaderboard", GroupID: groupID, Leaderboard: entries})
	if err != nil {
		h.logger.Printf("[Hub] failed to marshal update for %q: %v", groupID, err)
		return nil
	}
	return data
}
