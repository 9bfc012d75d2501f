package automation

import "reflect"

// PositionStore captures and restores opaque cursor snapshots. Every
// method degrades to "no restore possible" when the application does not
// expose positions.
type PositionStore struct {
	exec *Executor
}

// NewPositionStore creates a store on top of an executor
func NewPositionStore(exec *Executor) *PositionStore {
	return &PositionStore{exec: exec}
}

// Capture returns the current position, or nil when unavailable
func (s *PositionStore) Capture() Position {
	var pos Position
	_, err := s.exec.Cascade("GetPos", Strategy{Name: "getpos", Call: func(t Transport) (interface{}, error) {
		p, err := t.GetPos()
		pos = p
		return p, err
	}})
	if err != nil {
		return nil
	}
	return pos
}

// Restore moves the cursor back to pos. It reports false when pos is nil
// or the application refused.
func (s *PositionStore) Restore(pos Position) bool {
	if pos == nil {
		return false
	}
	return s.exec.BestEffort("SetPos", Strategy{Name: "setpos", Call: func(t Transport) (interface{}, error) {
		return nil, t.SetPos(pos)
	}})
}

// Changed reports whether two captured positions differ. Unknown
// positions never count as a change.
func Changed(before, after Position) bool {
	if before == nil || after == nil {
		return false
	}
	return !reflect.DeepEqual(before, after)
}
