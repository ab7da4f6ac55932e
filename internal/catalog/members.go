package catalog

import (
	"errors"
	"fmt"

	"github.com/sivaram/calc-admin/internal/chain"
	"github.com/sivaram/calc-admin/internal/store"
)

func fnLink(fn store.FormularNode) chain.Link {
	return chain.Link{ID: fn.ID, Next: fn.NextID}
}

func cfLink(cf store.CalculationFormular) chain.Link {
	return chain.Link{ID: cf.ID, Next: cf.NextID}
}

func linksOf[T any](items []T, link func(T) chain.Link) []chain.Link {
	links := make([]chain.Link, len(items))
	for i, it := range items {
		links[i] = link(it)
	}
	return links
}

// applyLinks copies the successor of every change onto the matching item
// and returns pointers to the items it touched.
func applyLinks[T any](items []T, changes []chain.Link, link func(T) chain.Link, set func(*T, *string)) []*T {
	var touched []*T
	for _, ch := range changes {
		for i := range items {
			if link(items[i]).ID == ch.ID {
				set(&items[i], ch.Next)
				touched = append(touched, &items[i])
				break
			}
		}
	}
	return touched
}

// ordered returns members in chain order. A broken chain is logged and the
// members fall back to creation order so reads keep working; a reorder
// request rewrites every pointer and repairs it.
func ordered[T any](c *Catalog, parent string, items []T, link func(T) chain.Link, created func(T) string) []T {
	sorted, err := chain.Sort(items, link)
	if err == nil {
		return sorted
	}
	c.logger.Warnf("Membership chain of %s is inconsistent, using creation order: %v", parent, err)
	fallback := append([]T(nil), items...)
	byCreation(fallback, func(it T) (string, string) { return created(it), link(it).ID })
	return fallback
}

func chainError(err error) error {
	switch {
	case errors.Is(err, chain.ErrUnknownLink), errors.Is(err, chain.ErrNotPermutation):
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	case errors.Is(err, chain.ErrBroken):
		return fmt.Errorf("%w: %w; reorder the members to repair it", ErrConflict, err)
	default:
		return err
	}
}

func setFNNext(now string) func(*store.FormularNode, *string) {
	return func(fn *store.FormularNode, next *string) {
		fn.NextID = next
		fn.UpdatedAt = now
	}
}

func setCFNext(now string) func(*store.CalculationFormular, *string) {
	return func(cf *store.CalculationFormular, next *string) {
		cf.NextID = next
		cf.UpdatedAt = now
	}
}

// spliceFormularNode queues the removal of target from its formular's chain
// into b and returns the remaining siblings with rewritten pointers.
func spliceFormularNode(b *store.Batch, siblings []store.FormularNode, target store.FormularNode, now string) ([]store.FormularNode, error) {
	changes, err := chain.Remove(linksOf(siblings, fnLink), target.ID)
	if err != nil {
		return nil, err
	}
	for _, fn := range applyLinks(siblings, changes, fnLink, setFNNext(now)) {
		b.PutFormularNode(fn)
	}
	b.DeleteFormularNode(&target)

	rest := make([]store.FormularNode, 0, len(siblings))
	for _, fn := range siblings {
		if fn.ID != target.ID {
			rest = append(rest, fn)
		}
	}
	return rest, nil
}

func spliceCalculationFormular(b *store.Batch, siblings []store.CalculationFormular, target store.CalculationFormular, now string) ([]store.CalculationFormular, error) {
	changes, err := chain.Remove(linksOf(siblings, cfLink), target.ID)
	if err != nil {
		return nil, err
	}
	for _, cf := range applyLinks(siblings, changes, cfLink, setCFNext(now)) {
		b.PutCalculationFormular(cf)
	}
	b.DeleteCalculationFormular(&target)

	rest := make([]store.CalculationFormular, 0, len(siblings))
	for _, cf := range siblings {
		if cf.ID != target.ID {
			rest = append(rest, cf)
		}
	}
	return rest, nil
}
