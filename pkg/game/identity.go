package game

import "strings"

// 身份信息缺失时的默认值
const (
	DefaultGroupID    = "default"
	GuestPlayerID     = "guest"
	DefaultPlayerName = "Player"
)

// PlayerIdentity 玩家身份：排行榜按 (GroupID, PlayerID) 记录最高分
type PlayerIdentity struct {
	GroupID    string `yaml:"groupId"`
	PlayerID   string `yaml:"playerId"`
	PlayerName string `yaml:"playerName"`
}

// Normalize 返回补全默认值后的身份
// 身份配置错误不能阻止游戏进行，缺失的字段退回 default / guest
func (p PlayerIdentity) Normalize() PlayerIdentity {
	out := PlayerIdentity{
		GroupID:    strings.TrimSpace(p.GroupID),
		PlayerID:   strings.TrimSpace(p.PlayerID),
		PlayerName: strings.TrimSpace(p.PlayerName),
	}
	if out.GroupID == "" {
		out.GroupID = DefaultGroupID
	}
	if out.PlayerID == "" {
		out.PlayerID = GuestPlayerID
	}
	if out.PlayerName == "" {
		out.PlayerName = DefaultPlayerName
	}
	return out
}

// IsGuest 是否为访客身份
func (p PlayerIdentity) IsGuest() bool {
	return p.Normalize().PlayerID == GuestPlayerID
}
