package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the referenced widget does not exist in the store.
var ErrNotFound = errors.New("widget not found")

const (
	defaultWidth  = 150
	defaultHeight = 150
	placementStep = 170
)

// Store holds the dashboard widget list behind a single-writer guard.
//
// The voice pipeline and the HTTP API mutate the same list; the mutex is the
// serialization point around state application so interleaved commands cannot
// produce a lost update.
type Store struct {
	mu      sync.RWMutex
	widgets []Widget
	path    string
}

// NewStore creates an empty in-memory store. When snapshotPath is non-empty,
// an existing snapshot is loaded and every mutation is persisted back to it.
func NewStore(snapshotPath string) (*Store, error) {
	s := &Store{path: snapshotPath}
	if snapshotPath == "" {
		return s, nil
	}

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read widget snapshot %q: %w", snapshotPath, err)
	}

	var widgets []Widget
	if err := json.Unmarshal(data, &widgets); err != nil {
		return nil, fmt.Errorf("decode widget snapshot %q: %w", snapshotPath, err)
	}
	s.widgets = widgets
	return s, nil
}

// Add appends a new widget of the given type with the empty default payload
// and returns a copy of it. Duplicate active types are the caller's concern;
// the voice pipeline always resolves through FindByType first.
func (s *Store) Add(t Type, pos Position) Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos == (Position{}) {
		pos = s.nextFreePositionLocked()
	}

	w := Widget{
		ID:       uuid.NewString(),
		Type:     t,
		Position: pos,
		Size:     Size{Width: defaultWidth, Height: defaultHeight},
		Data:     EmptyData(t),
		AddedAt:  time.Now(),
	}
	s.widgets = append(s.widgets, w)
	s.persistLocked()
	return w.clone()
}

// Update replaces the widget's data payload with a full copy of data.
func (s *Store) Update(id string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.widgets {
		if s.widgets[i].ID != id {
			continue
		}
		s.widgets[i].Data = data.clone()
		s.persistLocked()
		return nil
	}
	return fmt.Errorf("update widget %q: %w", id, ErrNotFound)
}

// Move updates the widget's layout position.
func (s *Store) Move(id string, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.widgets {
		if s.widgets[i].ID != id {
			continue
		}
		s.widgets[i].Position = pos
		s.persistLocked()
		return nil
	}
	return fmt.Errorf("move widget %q: %w", id, ErrNotFound)
}

// Trash moves a widget to the trash list. Trashed widgets keep their data and
// no longer count as the active instance of their type.
func (s *Store) Trash(id string) error {
	return s.setTrashed(id, true)
}

// Restore returns a trashed widget to the active dashboard.
func (s *Store) Restore(id string) error {
	return s.setTrashed(id, false)
}

func (s *Store) setTrashed(id string, trashed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.widgets {
		if s.widgets[i].ID != id {
			continue
		}
		s.widgets[i].Trashed = trashed
		s.persistLocked()
		return nil
	}
	return fmt.Errorf("widget %q: %w", id, ErrNotFound)
}

// Delete removes a widget permanently.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.widgets {
		if s.widgets[i].ID != id {
			continue
		}
		s.widgets = append(s.widgets[:i], s.widgets[i+1:]...)
		s.persistLocked()
		return nil
	}
	return fmt.Errorf("delete widget %q: %w", id, ErrNotFound)
}

// Get returns a copy of the widget with the given id.
func (s *Store) Get(id string) (Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.widgets {
		if s.widgets[i].ID == id {
			return s.widgets[i].clone(), true
		}
	}
	return Widget{}, false
}

// FindByType returns the active (non-trashed) widget of the given type.
// At most one active widget per type exists; the first match wins.
func (s *Store) FindByType(t Type) (Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.widgets {
		if s.widgets[i].Type == t && !s.widgets[i].Trashed {
			return s.widgets[i].clone(), true
		}
	}
	return Widget{}, false
}

// List returns copies of all active widgets in insertion order.
func (s *Store) List() []Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Widget, 0, len(s.widgets))
	for i := range s.widgets {
		if s.widgets[i].Trashed {
			continue
		}
		out = append(out, s.widgets[i].clone())
	}
	return out
}

// Trashed returns copies of all trashed widgets.
func (s *Store) Trashed() []Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Widget, 0)
	for i := range s.widgets {
		if s.widgets[i].Trashed {
			out = append(out, s.widgets[i].clone())
		}
	}
	return out
}

// nextFreePositionLocked stacks new widgets below existing active ones.
func (s *Store) nextFreePositionLocked() Position {
	active := 0
	for i := range s.widgets {
		if !s.widgets[i].Trashed {
			active++
		}
	}
	return Position{X: 0, Y: active * placementStep}
}

// persistLocked writes the snapshot file when persistence is configured.
// Snapshot failures are deliberately non-fatal for in-memory consumers.
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(s.widgets, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}
