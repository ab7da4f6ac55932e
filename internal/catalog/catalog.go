// Package catalog manages nodes, formulars and calculations and keeps the
// membership chains that order them consistent.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/store"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid request")
	ErrConflict = errors.New("conflict")
)

// Fixed-width UTC timestamps sort lexicographically in creation order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Catalog struct {
	store  *store.Store
	logger *logrus.Logger
	mu     sync.RWMutex

	now   func() time.Time
	newID func() string
}

func New(st *store.Store, logger *logrus.Logger) *Catalog {
	return &Catalog{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (c *Catalog) Logger() *logrus.Logger {
	return c.logger
}

func (c *Catalog) timestamp() string {
	return c.now().UTC().Format(timeLayout)
}

func requireName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is required", ErrInvalid, kind)
	}
	return name, nil
}

// snapshot is a consistent read of every record, taken under the read lock.
type snapshot struct {
	nodes        map[string]store.Node
	formulars    map[string]store.Formular
	calculations map[string]store.Calculation
	fns          []store.FormularNode
	cfs          []store.CalculationFormular
}

func (c *Catalog) load() (*snapshot, error) {
	nodes, err := c.store.ListNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %v", err)
	}
	formulars, err := c.store.ListFormulars()
	if err != nil {
		return nil, fmt.Errorf("failed to list formulars: %v", err)
	}
	calcs, err := c.store.ListCalculations()
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %v", err)
	}
	fns, err := c.store.AllFormularNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to list formular nodes: %v", err)
	}
	cfs, err := c.store.AllCalculationFormulars()
	if err != nil {
		return nil, fmt.Errorf("failed to list calculation formulars: %v", err)
	}

	s := &snapshot{
		nodes:        make(map[string]store.Node, len(nodes)),
		formulars:    make(map[string]store.Formular, len(formulars)),
		calculations: make(map[string]store.Calculation, len(calcs)),
		fns:          fns,
		cfs:          cfs,
	}
	for _, n := range nodes {
		s.nodes[n.ID] = n
	}
	for _, f := range formulars {
		s.formulars[f.ID] = f
	}
	for _, calc := range calcs {
		s.calculations[calc.ID] = calc
	}
	return s, nil
}

// byCreation orders records by creation time, then id.
func byCreation[T any](items []T, key func(T) (string, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, ii := key(items[i])
		cj, ij := key(items[j])
		if ci != cj {
			return ci < cj
		}
		return ii < ij
	})
}
