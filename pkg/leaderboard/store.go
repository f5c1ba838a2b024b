// Package leaderboard 实现分组排行榜：存储、HTTP 接口、websocket 实时推送和客户端
package leaderboard

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 参数校验错误
var (
	ErrMissingGroup  = errors.New("missing groupId")
	ErrMissingPlayer = errors.New("missing playerId")
)

// DefaultTopN 排行榜默认返回条数
const DefaultTopN = 20

// leaderboardObject gdata 中排行榜的对象名，每个分组一个属性
const leaderboardObject = "leaderboard"

// Entry 排行榜中的一条记录
type Entry struct {
	PlayerID string `yaml:"playerId" json:"playerId"`
	Score    int    `yaml:"score" json:"score"`
	// Seq 达到当前分数时的全局序号，同分时序号小的排前面
	Seq        uint64    `yaml:"seq" json:"-"`
	AchievedAt time.Time `yaml:"achievedAt" json:"-"`
}

// groupRecord 一个分组在 gdata 中的存储格式
type groupRecord struct {
	Entries []Entry `yaml:"entries"`
}

// Store 排行榜存储
//
// 每个 (groupId, playerId) 只保存最高分：提交更低或相同的分数不会改变记录，
// 因此重复、乱序的提交都是幂等的。
// gdataManager 为 nil 时只保存在内存中（降级模式）。Store 是并发安全的。
type Store struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager
	groups       map[string]map[string]*Entry
	seq          uint64
	now          func() time.Time
}

// NewStore 创建排行榜存储
func NewStore(gdataManager *gdata.Manager) *Store {
	if gdataManager == nil {
		log.Printf("[Leaderboard] Warning: no storage backend, leaderboard is memory-only")
	}
	return &Store{
		gdataManager: gdataManager,
		groups:       make(map[string]map[string]*Entry),
		now:          time.Now,
	}
}

// Submit 提交分数，按最高分合并
//
// 返回值：
//   - Entry: 合并后的记录
//   - bool: 是否刷新了该玩家的最高分（首次提交也算）
//   - error: 参数缺失或存储失败
func (s *Store) Submit(groupID, playerID string, score int) (Entry, bool, error) {
	groupID = strings.TrimSpace(groupID)
	playerID = strings.TrimSpace(playerID)
	if groupID == "" {
		return Entry{}, false, ErrMissingGroup
	}
	if playerID == "" {
		return Entry{}, false, ErrMissingPlayer
	}
	if score < 0 {
		score = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.loadGroupLocked(groupID)
	if err != nil {
		return Entry{}, false, err
	}

	entry, exists := group[playerID]
	if exists && score <= entry.Score {
		return *entry, false, nil
	}

	s.seq++
	updated := &Entry{
		PlayerID:   playerID,
		Score:      score,
		Seq:        s.seq,
		AchievedAt: s.now().UTC(),
	}
	group[playerID] = updated

	if err := s.saveGroupLocked(groupID, group); err != nil {
		// 回滚内存状态，保持和存储一致
		if exists {
			group[playerID] = entry
		} else {
			delete(group, playerID)
		}
		return Entry{}, false, err
	}

	return *updated, true, nil
}

// Top 返回分组内按分数降序的前 n 条记录
// 同分时先达到该分数的玩家排前面；n <= 0 时使用 DefaultTopN
func (s *Store) Top(groupID string, n int) ([]Entry, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, ErrMissingGroup
	}
	if n <= 0 {
		n = DefaultTopN
	}

	s.mu.Lock()
	group, err := s.loadGroupLocked(groupID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	entries := make([]Entry, 0, len(group))
	for _, e := range group {
		entries = append(entries, *e)
	}
	s.mu.Unlock()

	SortEntries(entries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Best 返回玩家在分组内的最高分
func (s *Store) Best(groupID, playerID string) (int, bool, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return 0, false, ErrMissingGroup
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.loadGroupLocked(groupID)
	if err != nil {
		return 0, false, err
	}
	e, ok := group[strings.TrimSpace(playerID)]
	if !ok {
		return 0, false, nil
	}
	return e.Score, true, nil
}

// Fetch 返回分组的前 DefaultTopN 条记录，与 Client.Fetch 签名一致
func (s *Store) Fetch(_ context.Context, groupID string) ([]Entry, error) {
	return s.Top(groupID, DefaultTopN)
}

// SortEntries 按分数降序、达成序号升序排序
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Seq < entries[j].Seq
	})
}

func (s *Store) loadGroupLocked(groupID string) (map[string]*Entry, error) {
	if group, ok := s.groups[groupID]; ok {
		return group, nil
	}

	group := make(map[string]*Entry)
	if s.gdataManager != nil {
		prop := groupPropKey(groupID)
		if s.gdataManager.ObjectPropExists(leaderboardObject, prop) {
			data, err := s.gdataManager.LoadObjectProp(leaderboardObject, prop)
			if err != nil {
				return nil, fmt.Errorf("failed to load leaderboard %q: %w", groupID, err)
			}
			var record groupRecord
			if err := yaml.Unmarshal(data, &record); err != nil {
				return nil, fmt.Errorf("failed to unmarshal leaderboard %q: %w", groupID, err)
			}
			for i := range record.Entries {
				e := record.Entries[i]
				group[e.PlayerID] = &e
				s.seq = max(s.seq, e.Seq)
			}
			log.Printf("[Leaderboard] Loaded group %q with %d entries", groupID, len(group))
		}
	}

	s.groups[groupID] = group
	return group, nil
}

func (s *Store) saveGroupLocked(groupID string, group map[string]*Entry) error {
	if s.gdataManager == nil {
		return nil
	}

	record := groupRecord{Entries: make([]Entry, 0, len(group))}
	for _, e := range group {
		record.Entries = append(record.Entries, *e)
	}
	SortEntries(record.Entries)

	data, err := yaml.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard %q: %w", groupID, err)
	}
	if err := s.gdataManager.SaveObjectProp(leaderboardObject, groupPropKey(groupID), data); err != nil {
		return fmt.Errorf("failed to save leaderboard %q: %w", groupID, err)
	}
	return nil
}

// groupPropKey 把分组ID转换为可以作为文件名的属性名
// 只含字母数字、下划线、短横线的ID原样使用，其余十六进制编码
func groupPropKey(groupID string) string {
	for _, r := range groupID {
		if !isSafeKeyRune(r) {
			return "x" + hex.EncodeToString([]byte(groupID))
		}
	}
	return "g_" + groupID
}

func isSafeKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}
