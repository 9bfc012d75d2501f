package automation

import (
	"strconv"
	"time"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/resilience"
)

// Direction is a text search scan direction
type Direction int

const (
	Forward       Direction = 0
	Backward      Direction = 1
	WholeDocument Direction = 2
)

// SearchPolicy bounds a text search: how many rounds, the pause between
// rounds, and which directions each round scans.
type SearchPolicy struct {
	Retry      resilience.RetryPolicy
	Directions []Direction
}

// DefaultSearchPolicy matches typical template rendering latency
func DefaultSearchPolicy() SearchPolicy {
	return SearchPolicy{
		Retry:      resilience.RetryPolicy{Attempts: 6, Delay: 60 * time.Millisecond},
		Directions: []Direction{Forward},
	}
}

// WithDirections returns a copy scanning the given directions
func (p SearchPolicy) WithDirections(dirs ...Direction) SearchPolicy {
	p.Directions = dirs
	return p
}

// WithRetry returns a copy with a different attempt budget and delay
func (p SearchPolicy) WithRetry(attempts int, delay time.Duration) SearchPolicy {
	p.Retry = resilience.RetryPolicy{Attempts: attempts, Delay: delay}
	return p
}

// Locator finds text through the application's search primitive
type Locator struct {
	exec *Executor
}

// NewLocator creates a locator
func NewLocator(exec *Executor) *Locator {
	return &Locator{exec: exec}
}

// FindOnce selects the next occurrence of needle scanning in dir
func (l *Locator) FindOnce(needle string, dir Direction) bool {
	if needle == "" {
		return false
	}
	set := ParamSet{
		Name:  "HFindReplace",
		Shape: ShapeStructured,
		Items: Params{"FindString": needle},
		Optional: Params{
			"ReplaceString": "",
			"IgnoreMessage": 1,
			"MatchCase":     0,
			"WholeWordOnly": 0,
			"AutoSpell":     0,
			"UseWildCards":  0,
			"SeveralWords":  0,
			"FindRegExp":    0,
			"FindStyle":     0,
			"FindInTable":   1,
			"IncludeTable":  1,
			"AllDocument":   1,
			"FindScope":     0,
			"Direction":     int(dir),
		},
	}
	result, err := l.exec.Cascade("RepeatFind", ExecuteSet("RepeatFind", set))
	if err != nil {
		return false
	}
	return found(result)
}

// Find runs rounds of searches over every direction and candidate until
// one hits or the policy budget is exhausted.
func (l *Locator) Find(candidates []string, policy SearchPolicy) bool {
	dirs := policy.Directions
	if len(dirs) == 0 {
		dirs = []Direction{Forward}
	}
	return policy.Retry.Do(func(int) bool {
		for _, dir := range dirs {
			for _, needle := range candidates {
				if l.FindOnce(needle, dir) {
					return true
				}
			}
		}
		return false
	})
}

// DeleteFound removes the selection left by a successful search. A
// failure here is tolerated; nothing else can be done about it.
func (l *Locator) DeleteFound() {
	if l.exec.TryRun("Delete") {
		return
	}
	l.exec.TryRun("DeleteBack")
}

// MoveDocStart moves the cursor to the start of the document
func (l *Locator) MoveDocStart() bool {
	for _, action := range []string{"MoveDocBegin", "MoveTop", "MoveBegin"} {
		if l.exec.TryRun(action) {
			return true
		}
	}
	return false
}

// found interprets a search result: an explicit false or zero is a miss,
// anything else (including no value) is a hit.
func found(result interface{}) bool {
	switch v := result.(type) {
	case nil:
		return true
	case bool:
		return v
	case int:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint8:
		return v != 0
	case float64:
		return v != 0
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return true
		}
		return n != 0
	default:
		return true
	}
}
