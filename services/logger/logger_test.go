package logsvc

import (
	"bytes"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/labhub/core"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(log.New(&buf, "", 0), "info")

	logger.Debug("hidden")
	logger.Info("catalog built", map[string]interface{}{"subjects": 3, "programs": 12})
	logger.Warn("slow", httptest.NewRequest("GET", "/v1/programs?year=1", nil))
	logger.Error("boom", errors.New("disk on fire"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO catalog built programs=12 subjects=3\n")
	assert.Contains(t, out, `WARN slow request="GET /v1/programs?year=1"`)
	assert.Contains(t, out, "ERROR boom\ndisk on fire\n")
	assert.Contains(t, out, "TestConsoleLogger", "errors are printed with their stack")
}

func TestConsoleLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(log.New(&buf, "", 0), "error")
	var exited string
	logger.exit = func(v ...interface{}) { exited = v[0].(string) }

	logger.Warn("hidden")
	logger.Fatal("cannot start", "extra")

	assert.Equal(t, "cannot start", exited)
	assert.Equal(t, "FATAL cannot start extra\n", buf.String())
}

func TestRollbarLogger_prepare(t *testing.T) {
	var buf bytes.Buffer
	conf := core.NewTestConfig()
	logger := NewRollbarLogger(log.New(&buf, "", 0), conf) // no token: rollbar is disabled

	req1 := httptest.NewRequest("GET", "/a", nil)
	req2 := httptest.NewRequest("GET", "/b", nil)
	err := errors.New("oops")
	extras := map[string]interface{}{"k": "v"}

	args := logger.prepare("msg", []interface{}{req1, err, req2, extras})
	require.Len(t, args, 4)
	assert.Equal(t, "msg", args[0])
	assert.Same(t, req1, args[1])
	assert.Equal(t, err, args[2])
	assert.Equal(t, extras, args[3])

	logger.Info("hello", extras)
	assert.True(t, strings.HasPrefix(buf.String(), "INFO hello k=v"))
}
