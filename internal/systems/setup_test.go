package systems

import (
	"os"
	"testing"

	"tapdash-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Логгер нужен системам, которые пишут debug-записи
	logger.Init()
	os.Exit(m.Run())
}
