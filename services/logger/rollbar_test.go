package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", Debug: true})
	logger.Enable(false)

	usr := user.User{ID: 7, Username: "student1"}
	tests := []struct {
		name string
		log  func(msg string, args ...interface{})
		want []string
	}{
		{"debug", logger.Debug, []string{"[DEBUG] loading"}},
		{"info", logger.Info, []string{"[INFO] loading"}},
		{"warn", logger.Warn, []string{"[WARN] loading"}},
		{"error with args", logger.Error, []string{"[ERROR] loading", "boom", "user: 7 (student1)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if strings.Contains(tt.name, "args") {
				tt.log("loading", core.NewShutdownError("boom"), usr)
			} else {
				tt.log("loading")
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := RollbarLogger{}
	err := errors.New("boom")
	extras := map[string]interface{}{"path": "/v1/notes"}

	got := logger.prepare("failed", []interface{}{err, user.User{ID: 1}, extras, user.User{ID: 2}})
	assert.Equal(t, []interface{}{"failed", err, extras}, got, "users are sent as the rollbar person, not as args")
}
