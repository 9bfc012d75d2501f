package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsUnique(t *testing.T) {
	gen := NewGenerator()
	assert.NotEqual(t, gen.Generate(), gen.Generate())
}

func TestTypedIDs(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		prefix string
	}{
		{name: "session", id: NewSessionID().String(), prefix: "sess_"},
		{name: "request", id: NewRequestID().String(), prefix: "req_"},
		{name: "run", id: NewRunID().String(), prefix: "run_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.id, tt.prefix))
			assert.Len(t, strings.TrimPrefix(tt.id, tt.prefix), 26)
			assert.True(t, IsValid(tt.id))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "bare", input: NewGenerator().Generate().String(), ok: true},
		{name: "prefixed", input: NewSessionID().String(), ok: true},
		{name: "garbage", input: "sess_not-a-ulid", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Equal(t, tt.ok, err == nil)
		})
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, err := Timestamp(NewRunID().String())
	require.NoError(t, err)

	assert.True(t, ts.After(before))
	assert.True(t, ts.Before(time.Now().Add(time.Second)))
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 64)
	a := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()

	assert.Equal(t, a.Entropy(), b.Entropy())
}

func TestConcurrentGeneration(t *testing.T) {
	const n = 200
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[SessionID]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := NewSessionID()
			mu.Lock()
			seen[sid] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}
