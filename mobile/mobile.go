//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.neonrun -o build/android/neonrun.aar -v ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/NeonRun.xcframework -v ./mobile
//
// 移动端没有嵌入配置文件，使用内置默认数值；触摸屏幕左右半边控制移动。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/neonrun/pkg/app"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
)

func init() {
	manager, err := gdata.Open(gdata.Config{AppName: "neonrun"})
	if err != nil {
		log.Printf("[Mobile] Warning: storage unavailable: %v", err)
		manager = nil
	}

	profile := game.NewProfileManager(manager)
	identity := profile.Identity()
	store := leaderboard.NewStore(manager)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   true,
		Identity:  identity,
		Submitter: leaderboard.StoreSubmitter(store, identity),
		Board:     store,
		Profile:   profile,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
