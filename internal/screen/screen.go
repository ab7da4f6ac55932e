// Package screen holds the list/detail controllers behind the admin front
// ends. A controller owns the loaded entity list, a loading flag and one
// banner message; every mutation is followed by a full refetch.
package screen

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Row is one rendered entity. Children are membership rows, keyed by the
// membership record id with Ref naming the member entity.
type Row struct {
	Key      string
	Title    string
	Detail   string
	Ref      string
	Children []Row
}

// Page is a snapshot of what a screen shows.
type Page struct {
	Title   string
	Loading bool
	Banner  string
	Rows    []Row
}

// Form is the create/edit dialog. Data is only used by the node screen.
type Form struct {
	Name string
	Data string
}

type Screen interface {
	Title() string
	Mount(ctx context.Context)
	Refresh(ctx context.Context) error
	Page() Page
	Create(ctx context.Context, f Form) error
	Edit(id string) (Form, bool)
	Update(ctx context.Context, id string, f Form) error
	Delete(ctx context.Context, id string) error
}

// Linker is implemented by screens whose rows own an ordered child list.
type Linker interface {
	ChildNoun() string
	Candidates(parentID string) []Row
	Link(ctx context.Context, parentID, childID string) error
	Unlink(ctx context.Context, parentID, childID string) error
	Move(ctx context.Context, parentID, childID string, delta int) error
}

// list is the state shared by all screens.
type list[T any] struct {
	logger *logrus.Logger
	plural string
	fetch  func(ctx context.Context) ([]T, error)
	rows   func(items []T) []Row

	mu         sync.RWMutex
	items      []T
	loading    bool
	banner     string
	loadFailed bool
}

func newList[T any](logger *logrus.Logger, plural string, fetch func(context.Context) ([]T, error), rows func([]T) []Row) *list[T] {
	return &list[T]{
		logger:  logger,
		plural:  plural,
		fetch:   fetch,
		rows:    rows,
		loading: true,
	}
}

// load refetches the list. On failure the previous items are kept but
// hidden behind the banner.
func (l *list[T]) load(ctx context.Context) error {
	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.banner = "Failed to load " + l.plural
		l.loadFailed = true
		l.logger.Errorf("Failed to load %s: %v", l.plural, err)
		return err
	}
	l.items = items
	l.banner = ""
	l.loadFailed = false
	return nil
}

// mutate runs fn and refetches once on success. On failure only the banner
// changes.
func (l *list[T]) mutate(ctx context.Context, failure string, fn func() error) error {
	if err := fn(); err != nil {
		l.mu.Lock()
		l.banner = failure
		l.mu.Unlock()
		l.logger.Errorf("%s: %v", failure, err)
		return err
	}
	return l.load(ctx)
}

func (l *list[T]) page(title string) Page {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p := Page{Title: title, Loading: l.loading, Banner: l.banner}
	if !l.loading && !l.loadFailed {
		p.Rows = l.rows(l.items)
	}
	return p
}

func (l *list[T]) find(match func(T) bool) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func strPtr(s string) *string { return &s }

// shift moves ids[from] by delta positions, clamped to the slice bounds.
// It reports false when nothing moves.
func shift(ids []string, from, delta int) ([]string, bool) {
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(ids)-1 {
		to = len(ids) - 1
	}
	if to == from {
		return ids, false
	}
	out := make([]string, 0, len(ids))
	moved := ids[from]
	for i, id := range ids {
		if i == from {
			continue
		}
		out = append(out, id)
	}
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out, true
}
