package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Profile 本机玩家档案
// 只保存身份和本机最高分，不保存进行中的对局
type Profile struct {
	Identity  PlayerIdentity `yaml:"identity"`
	BestScore int            `yaml:"bestScore"`
	Games     int            `yaml:"games"`
}

// DefaultProfile 返回默认档案（访客身份）
func DefaultProfile() *Profile {
	return &Profile{
		Identity: PlayerIdentity{}.Normalize(),
	}
}

// ProfileManager 档案管理器
// 负责玩家档案的加载、保存和内存管理
type ProfileManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	profile      *Profile
}

// 存储路径常量
const (
	profileObject   = "profile"
	profileProperty = "local"
)

// NewProfileManager 创建新的档案管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存档案）
func NewProfileManager(gdataManager *gdata.Manager) *ProfileManager {
	pm := &ProfileManager{
		gdataManager: gdataManager,
		profile:      DefaultProfile(),
	}

	if err := pm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认档案
		log.Printf("[ProfileManager] Warning: Failed to load profile: %v (using defaults)", err)
	}

	return pm
}

// Load 从 gdata 加载档案
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认档案
func (pm *ProfileManager) Load() error {
	if pm.gdataManager == nil {
		pm.profile = DefaultProfile()
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(profileObject, profileProperty) {
		pm.profile = DefaultProfile()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		pm.profile = DefaultProfile()
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var loaded Profile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		pm.profile = DefaultProfile()
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	loaded.Identity = loaded.Identity.Normalize()
	loaded.BestScore = NormalizeScore(loaded.BestScore)

	pm.profile = &loaded
	log.Printf("[ProfileManager] Profile loaded: %s/%s", loaded.Identity.GroupID, loaded.Identity.PlayerID)
	return nil
}

// Save 保存档案到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (pm *ProfileManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	log.Printf("[ProfileManager] Profile saved")
	return nil
}

// Profile 返回当前档案
func (pm *ProfileManager) Profile() *Profile {
	return pm.profile
}

// Identity 返回补全默认值后的身份
func (pm *ProfileManager) Identity() PlayerIdentity {
	return pm.profile.Identity.Normalize()
}

// SetIdentity 覆盖身份中非空的字段（命令行参数优先于已保存的档案）
// 注意：仅修改内存中的档案，需调用 Save() 持久化
func (pm *ProfileManager) SetIdentity(id PlayerIdentity) {
	current := pm.profile.Identity
	if id.GroupID != "" {
		current.GroupID = id.GroupID
	}
	if id.PlayerID != "" {
		current.PlayerID = id.PlayerID
	}
	if id.PlayerName != "" {
		current.PlayerName = id.PlayerName
	}
	pm.profile.Identity = current.Normalize()
}

// RecordGame 记录一局结束，返回是否刷新了本机最高分
// 注意：仅修改内存中的档案，需调用 Save() 持久化
func (pm *ProfileManager) RecordGame(score int) bool {
	pm.profile.Games++
	score = NormalizeScore(score)
	if score > pm.profile.BestScore {
		pm.profile.BestScore = score
		return true
	}
	return false
}
