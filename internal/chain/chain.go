// Package chain orders membership records that point at their successor.
//
// A chain is a set of links where each link names the link that follows it
// (Next) and the tail has no successor. A valid chain has exactly one head,
// no forks, no cycles and no pointers to links outside the set. The
// functions here compute orders and the pointer rewrites needed to keep a
// chain valid across insertions, removals and reorders; they never mutate
// their input.
package chain

import (
	"errors"
	"fmt"
)

var (
	ErrBroken         = errors.New("broken chain")
	ErrUnknownLink    = errors.New("unknown link")
	ErrNotPermutation = errors.New("order is not a permutation of the chain")
)

// Link is one element of a chain.
type Link struct {
	ID   string
	Next *string
}

func next(id string) *string {
	return &id
}

func sameNext(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Order returns the link IDs from head to tail.
func Order(links []Link) ([]string, error) {
	if len(links) == 0 {
		return nil, nil
	}

	byID := make(map[string]Link, len(links))
	for _, l := range links {
		if _, dup := byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate link %s", ErrBroken, l.ID)
		}
		byID[l.ID] = l
	}

	inbound := make(map[string]int, len(links))
	for _, l := range links {
		if l.Next == nil {
			continue
		}
		if _, ok := byID[*l.Next]; !ok {
			return nil, fmt.Errorf("%w: %s points at missing link %s", ErrBroken, l.ID, *l.Next)
		}
		inbound[*l.Next]++
		if inbound[*l.Next] > 1 {
			return nil, fmt.Errorf("%w: link %s has more than one predecessor", ErrBroken, *l.Next)
		}
	}

	var heads []string
	for _, l := range links {
		if inbound[l.ID] == 0 {
			heads = append(heads, l.ID)
		}
	}
	if len(heads) != 1 {
		return nil, fmt.Errorf("%w: expected one head, found %d", ErrBroken, len(heads))
	}

	order := make([]string, 0, len(links))
	seen := make(map[string]struct{}, len(links))
	for cur := &heads[0]; cur != nil; cur = byID[*cur].Next {
		if _, ok := seen[*cur]; ok {
			return nil, fmt.Errorf("%w: cycle at %s", ErrBroken, *cur)
		}
		seen[*cur] = struct{}{}
		order = append(order, *cur)
	}
	if len(order) != len(links) {
		return nil, fmt.Errorf("%w: %d of %d links reachable from head", ErrBroken, len(order), len(links))
	}
	return order, nil
}

// Sort returns items in chain order. link extracts the chain link of an item.
func Sort[T any](items []T, link func(T) Link) ([]T, error) {
	links := make([]Link, len(items))
	index := make(map[string]int, len(items))
	for i, it := range items {
		links[i] = link(it)
		index[links[i].ID] = i
	}

	order, err := Order(links)
	if err != nil {
		return nil, err
	}

	sorted := make([]T, 0, len(items))
	for _, id := range order {
		sorted = append(sorted, items[index[id]])
	}
	return sorted, nil
}

// Thread links ids in the given order; the last link becomes the tail.
func Thread(ids []string) []Link {
	links := make([]Link, len(ids))
	for i, id := range ids {
		links[i] = Link{ID: id}
		if i+1 < len(ids) {
			links[i].Next = next(ids[i+1])
		}
	}
	return links
}

// Insert returns the links to write so that id joins the chain right before
// the link named by before, or at the tail when before is nil. The new link
// is always part of the result.
func Insert(links []Link, id string, before *string) ([]Link, error) {
	order, err := Order(links)
	if err != nil {
		return nil, err
	}

	if before == nil {
		changes := []Link{{ID: id}}
		if len(order) > 0 {
			changes = append(changes, Link{ID: order[len(order)-1], Next: next(id)})
		}
		return changes, nil
	}

	known := false
	for _, l := range links {
		if l.ID == *before {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLink, *before)
	}

	changes := []Link{{ID: id, Next: next(*before)}}
	for _, l := range links {
		if l.Next != nil && *l.Next == *before {
			changes = append(changes, Link{ID: l.ID, Next: next(id)})
			break
		}
	}
	return changes, nil
}

// Remove returns the links to write so that the chain skips id. The
// removed link itself is not part of the result.
func Remove(links []Link, id string) ([]Link, error) {
	var removed *Link
	for i := range links {
		if links[i].ID == id {
			removed = &links[i]
			break
		}
	}
	if removed == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLink, id)
	}

	for _, l := range links {
		if l.Next != nil && *l.Next == id {
			return []Link{{ID: l.ID, Next: removed.Next}}, nil
		}
	}
	return nil, nil
}

// Reorder returns the links whose successor changes when the chain is
// rethreaded to follow order. order must name every link exactly once.
func Reorder(links []Link, order []string) ([]Link, error) {
	if len(order) != len(links) {
		return nil, fmt.Errorf("%w: got %d ids for %d links", ErrNotPermutation, len(order), len(links))
	}

	current := make(map[string]*string, len(links))
	for _, l := range links {
		current[l.ID] = l.Next
	}
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, ok := current[id]; !ok {
			return nil, fmt.Errorf("%w: %s is not in the chain", ErrNotPermutation, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrNotPermutation, id)
		}
		seen[id] = struct{}{}
	}

	var changes []Link
	for _, l := range Thread(order) {
		if !sameNext(current[l.ID], l.Next) {
			changes = append(changes, l)
		}
	}
	return changes, nil
}
