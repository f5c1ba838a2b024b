package leaderboard

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Source 可以读取排行榜的来源（远程 Client 或本地 Store）
type Source interface {
	Fetch(ctx context.Context, groupID string) ([]Entry, error)
}

// maxNameWidth 排行榜中玩家ID的显示宽度
const maxNameWidth = 14

// FormatRows 把排行榜格式化为等宽文本行，如 " 1. alice           300"
func FormatRows(entries []Entry) []string {
	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, fmt.Sprintf("%2d. %-*s %6d", i+1, maxNameWidth, truncate(e.PlayerID, maxNameWidth), e.Score))
	}
	return rows
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "~"
}
