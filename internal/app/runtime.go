package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "RAG_ADMIN_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

// InTestMode reports whether the process runs under the test harness, in
// which case the binaries refuse to start and connection side effects are
// skipped. The environment is read once and cached.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testModeFlag.Store(os.Getenv(testModeEnv) == "1")
	})
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the flag after the environment changed.
func RefreshTestMode() {
	testModeFlag.Store(os.Getenv(testModeEnv) == "1")
}
