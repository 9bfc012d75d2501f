package system

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/platform"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type desktop struct {
	title  string
	titles []string
}

func (d *desktop) Foreground() (platform.Window, string) { return 1, d.title }
func (d *desktop) SetForeground(platform.Window) error    { return nil }
func (d *desktop) VisibleTitles() ([]string, error)      { return d.titles, nil }

func newProvider(d platform.Desktop) *Provider {
	if d == nil {
		d = &desktop{}
	}
	return NewProvider(d, monitoring.NewMetrics(), nil)
}

func exec(t *testing.T, sys *Provider, tool string, params map[string]interface{}, appCtx *types.Context) *types.Result {
	t.Helper()
	result, err := sys.Execute(context.Background(), tool, params, appCtx)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestDefinition(t *testing.T) {
	def := newProvider(nil).Definition()

	assert.Equal(t, "system", def.ID)
	assert.Equal(t, types.CategorySystem, def.Category)
	assert.Len(t, def.Tools, 6)
}

func TestSystemInfo(t *testing.T) {
	result := exec(t, newProvider(nil), "system.info", nil, nil)

	require.True(t, result.Success)
	assert.NotEmpty(t, result.Data["go_version"])
	assert.Equal(t, platform.Supported(), result.Data["automation_support"])
}

func TestSystemWindows(t *testing.T) {
	d := &desktop{
		title:  "Notepad",
		titles: []string{"Chrome", "a.hwp - 한글", "b.hwp - 한글"},
	}
	result := exec(t, newProvider(d), "system.windows", nil, nil)

	require.True(t, result.Success)
	assert.Equal(t, []string{"a.hwp - 한글", "b.hwp - 한글"}, result.Data["windows"])
	assert.Equal(t, "", result.Data["foreground"])
	assert.Equal(t, "a.hwp", result.Data["current"])
}

func TestSystemWindowsNoneOpen(t *testing.T) {
	result := exec(t, newProvider(nil), "system.windows", nil, nil)

	require.True(t, result.Success)
	assert.Equal(t, []string{}, result.Data["windows"])
}

func TestSystemMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	metrics.RecordScriptStep("hwp.insert_text", true)
	sys := NewProvider(&desktop{}, metrics, nil)

	result := exec(t, sys, "system.metrics", nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, metrics.GetSnapshot(), result.Data["snapshot"])
}

func TestSystemLog(t *testing.T) {
	sys := newProvider(nil)

	result := exec(t, sys, "system.log", map[string]interface{}{"message": "Test log message"}, nil)
	require.True(t, result.Success)

	result = exec(t, sys, "system.get_logs", map[string]interface{}{"limit": 10.0}, nil)
	require.True(t, result.Success)

	logs := result.Data["logs"].([]LogEntry)
	require.Len(t, logs, 1)
	assert.Equal(t, "Test log message", logs[0].Message)
	assert.Equal(t, "info", logs[0].Level)
}

func TestSystemLogRequiresMessage(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{name: "missing", params: nil},
		{name: "blank", params: map[string]interface{}{"message": "  "}},
		{name: "wrong type", params: map[string]interface{}{"message": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := exec(t, newProvider(nil), "system.log", tt.params, nil)
			assert.False(t, result.Success)
		})
	}
}

func TestSystemLogFilter(t *testing.T) {
	sys := newProvider(nil)
	runA, runB := "run_a", "run_b"

	exec(t, sys, "system.log", map[string]interface{}{"message": "Info message", "level": "info"}, &types.Context{RunID: &runA})
	exec(t, sys, "system.log", map[string]interface{}{"message": "Error message", "level": "ERROR"}, &types.Context{RunID: &runA})
	exec(t, sys, "system.log", map[string]interface{}{"message": "Other run", "level": "error"}, &types.Context{RunID: &runB})

	tests := []struct {
		name   string
		params map[string]interface{}
		want   []string
	}{
		{name: "all newest first", params: nil, want: []string{"Other run", "Error message", "Info message"}},
		{name: "by level", params: map[string]interface{}{"level": "error"}, want: []string{"Other run", "Error message"}},
		{name: "by run", params: map[string]interface{}{"run_id": "run_a"}, want: []string{"Error message", "Info message"}},
		{name: "limited", params: map[string]interface{}{"limit": 1.0}, want: []string{"Other run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := exec(t, sys, "system.get_logs", tt.params, nil)
			var got []string
			for _, entry := range result.Data["logs"].([]LogEntry) {
				got = append(got, entry.Message)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), result.Data["count"])
		})
	}
}

func TestSystemLogCarriesRequestID(t *testing.T) {
	sys := newProvider(nil)
	reqID := "req_1"

	exec(t, sys, "system.log", map[string]interface{}{"message": "m"}, &types.Context{RequestID: &reqID})

	logs := exec(t, sys, "system.get_logs", nil, nil).Data["logs"].([]LogEntry)
	require.Len(t, logs, 1)
	assert.Equal(t, "req_1", logs[0].RequestID)
	assert.Empty(t, logs[0].RunID)
}

func TestSystemPing(t *testing.T) {
	result := exec(t, newProvider(nil), "system.ping", nil, nil)

	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["pong"])
}

func TestUnknownTool(t *testing.T) {
	result := exec(t, newProvider(nil), "system.reboot", nil, nil)

	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "system.reboot")
}

func TestLogRotation(t *testing.T) {
	buf := NewCircularLogBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		buf.Add(&LogEntry{Message: msg, Level: "info"})
	}

	logs := buf.GetRecent(10, "", "")
	require.Len(t, logs, 3)
	assert.Equal(t, "e", logs[0].Message)
	assert.Equal(t, "c", logs[2].Message)
}
