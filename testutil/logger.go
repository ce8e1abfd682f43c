package testutil

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/couchbase/tools-multiqueue/log"
)

// MockLogger is a 'log.Logger' which records formatted log messages as calls on a testify mock, expectations are set
// on the level and the fully formatted message e.g. 'l.On("Log", log.LevelInfo, "loaded 3 items")'.
type MockLogger struct {
	mock.Mock
}

var _ log.Logger = (*MockLogger)(nil)

// Log records the call using the formatted message.
func (m *MockLogger) Log(level log.Level, format string, args ...any) {
	m.Called(level, fmt.Sprintf(format, args...))
}

// AnyMessage matches any message passed to 'MockLogger.Log'.
var AnyMessage = mock.AnythingOfType("string")
