package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordStrategy("TableCreate", "direct", false)
	a.RecordStrategy("TableCreate", "structured", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.StrategyAttempts.WithLabelValues("TableCreate", "direct", "failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.StrategyAttempts.WithLabelValues("TableCreate", "direct", "failed")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordStrategy("Run", "action", false)
	m.RecordCascade("Run", false, time.Millisecond)
	m.RecordInsertion("text", nil)
	m.RecordInsertion("table", errors.New("boom"))
	m.RecordPlaceholder("###", true)
	m.RecordPlaceholder("@@@", false)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.StrategyAttempts)
	assert.Equal(t, int64(1), snap.StrategyFailures)
	assert.Equal(t, int64(1), snap.CascadesFailed)
	assert.Equal(t, int64(2), snap.Insertions)
	assert.Equal(t, int64(1), snap.PlaceholdersHit)
	assert.Equal(t, int64(1), snap.PlaceholdersMiss)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordStrategy("op", "s", true)
		m.RecordCascade("op", true, 0)
		m.RecordInsertion("text", nil)
		m.RecordPlaceholder("###", false)
		m.RecordScriptStep("insert_text", true)
		m.IncSessionsConnected()
		m.RecordBreaker("closed", "open")
		m.RecordHTTPRequest("GET", "/", "200", 0)
	})
	assert.Equal(t, Snapshot{}, m.GetSnapshot())
}
