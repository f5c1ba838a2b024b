package game

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdataManager 创建用于测试的 gdata Manager
// 存储目录指向临时目录；无法创建时跳过测试
func openTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	appName := fmt.Sprintf("neonrun_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}
