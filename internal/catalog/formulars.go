package catalog

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/chain"
	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
)

func (c *Catalog) ListFormulars() ([]model.Formular, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.load()
	if err != nil {
		c.logger.Errorf("Failed to load formulars: %v", err)
		return nil, err
	}

	records := make([]store.Formular, 0, len(s.formulars))
	for _, f := range s.formulars {
		records = append(records, f)
	}
	byCreation(records, func(f store.Formular) (string, string) { return f.CreatedAt, f.ID })

	formulars := make([]model.Formular, 0, len(records))
	for _, f := range records {
		formulars = append(formulars, c.formularView(s, f))
	}
	return formulars, nil
}

func (c *Catalog) GetFormular(id string) (*model.Formular, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.logger.Infof("Fetching formular: %s", id)
	s, err := c.load()
	if err != nil {
		return nil, err
	}
	f, ok := s.formulars[id]
	if !ok {
		return nil, fmt.Errorf("%w: formular %s", ErrNotFound, id)
	}
	view := c.formularView(s, f)
	return &view, nil
}

func (c *Catalog) CreateFormular(in model.CreateFormularInput) (*model.Formular, error) {
	name, err := requireName("formular", in.Name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.timestamp()
	f := store.Formular{ID: c.newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := c.store.PutFormular(&f); err != nil {
		c.logger.Errorf("Failed to store formular %s: %v", f.ID, err)
		return nil, fmt.Errorf("failed to store formular: %v", err)
	}

	c.logger.Infof("Formular %s created", f.ID)
	view := formularModel(f)
	return &view, nil
}

func (c *Catalog) UpdateFormular(id string, in model.UpdateFormularInput) (*model.Formular, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.store.GetFormular(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formular %s", ErrNotFound, id)
	}

	if in.Name != nil {
		name, err := requireName("formular", *in.Name)
		if err != nil {
			return nil, err
		}
		f.Name = name
	}
	f.UpdatedAt = c.timestamp()

	if err := c.store.PutFormular(f); err != nil {
		return nil, fmt.Errorf("failed to update formular: %v", err)
	}

	view := formularModel(*f)
	return &view, nil
}

// DeleteFormular drops the formular with its node memberships and splices
// it out of every calculation chain.
func (c *Catalog) DeleteFormular(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Deleting formular: %s", id)

	f, err := c.store.GetFormular(id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: formular %s", ErrNotFound, id)
	}

	b := &store.Batch{}
	now := c.timestamp()

	fns, err := c.store.FormularNodes(id)
	if err != nil {
		return err
	}
	for i := range fns {
		b.DeleteFormularNode(&fns[i])
	}

	all, err := c.store.AllCalculationFormulars()
	if err != nil {
		return err
	}
	for _, cf := range all {
		if cf.FormularID != id {
			continue
		}
		siblings, err := c.store.CalculationFormulars(cf.CalculationID)
		if err != nil {
			return err
		}
		if _, err := spliceCalculationFormular(b, siblings, cf, now); err != nil {
			return fmt.Errorf("failed to unlink formular %s from calculation %s: %w", id, cf.CalculationID, chainError(err))
		}
		c.logger.Infof("Formular %s removed from calculation %s", id, cf.CalculationID)
	}
	b.DeleteFormular(id)

	if err := c.store.Write(b); err != nil {
		return fmt.Errorf("failed to delete formular: %v", err)
	}
	return nil
}

func (c *Catalog) FormularNodes(formularID string) ([]model.FormularNode, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.load()
	if err != nil {
		return nil, err
	}
	if _, ok := s.formulars[formularID]; !ok {
		return nil, fmt.Errorf("%w: formular %s", ErrNotFound, formularID)
	}
	return c.orderedFormularNodes(s, formularID), nil
}

// AddFormularNode links a node into the formular, at the tail or right
// before the membership named by in.NextID.
func (c *Catalog) AddFormularNode(formularID string, in model.AddNodeInput) (*model.FormularNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Adding node %s to formular %s", in.NodeID, formularID)

	f, err := c.store.GetFormular(formularID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formular %s", ErrNotFound, formularID)
	}
	n, err := c.store.GetNode(in.NodeID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: node %s does not exist", ErrInvalid, in.NodeID)
	}

	siblings, err := c.store.FormularNodes(formularID)
	if err != nil {
		return nil, err
	}
	for _, fn := range siblings {
		if fn.NodeID == in.NodeID {
			return nil, fmt.Errorf("%w: node %s is already part of formular %s", ErrConflict, in.NodeID, formularID)
		}
	}

	var before *string
	if in.NextID != nil && *in.NextID != "" {
		before = in.NextID
	}

	now := c.timestamp()
	fn := store.FormularNode{
		ID:         c.newID(),
		FormularID: formularID,
		NodeID:     in.NodeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	changes, err := chain.Insert(linksOf(siblings, fnLink), fn.ID, before)
	if err != nil {
		c.logger.Warnf("Cannot insert node %s into formular %s: %v", in.NodeID, formularID, err)
		return nil, chainError(err)
	}
	fn.NextID = changes[0].Next

	b := &store.Batch{}
	b.PutFormularNode(&fn)
	for _, sib := range applyLinks(siblings, changes[1:], fnLink, setFNNext(now)) {
		b.PutFormularNode(sib)
	}
	if err := c.store.Write(b); err != nil {
		c.logger.Errorf("Failed to store formular node %s: %v", fn.ID, err)
		return nil, fmt.Errorf("failed to store formular node: %v", err)
	}

	view := formularNodeModel(fn)
	nm := nodeModel(*n)
	view.Node = &nm
	return &view, nil
}

// RemoveFormularNode unlinks the node from the formular and closes the gap
// in the chain.
func (c *Catalog) RemoveFormularNode(formularID, nodeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Removing node %s from formular %s", nodeID, formularID)

	siblings, err := c.store.FormularNodes(formularID)
	if err != nil {
		return err
	}
	var target *store.FormularNode
	for i := range siblings {
		if siblings[i].NodeID == nodeID {
			target = &siblings[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: node %s is not part of formular %s", ErrNotFound, nodeID, formularID)
	}

	b := &store.Batch{}
	if _, err := spliceFormularNode(b, siblings, *target, c.timestamp()); err != nil {
		return chainError(err)
	}
	if err := c.store.Write(b); err != nil {
		return fmt.Errorf("failed to remove formular node: %v", err)
	}
	return nil
}

// ReorderFormularNodes rethreads the formular's chain to follow nodeOrder,
// which must list every member node exactly once.
func (c *Catalog) ReorderFormularNodes(formularID string, nodeOrder []string) ([]model.FormularNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Reordering nodes of formular %s: %v", formularID, nodeOrder)

	f, err := c.store.GetFormular(formularID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formular %s", ErrNotFound, formularID)
	}

	siblings, err := c.store.FormularNodes(formularID)
	if err != nil {
		return nil, err
	}
	byNode := make(map[string]string, len(siblings))
	for _, fn := range siblings {
		byNode[fn.NodeID] = fn.ID
	}
	order := make([]string, 0, len(nodeOrder))
	for _, nodeID := range nodeOrder {
		id, ok := byNode[nodeID]
		if !ok {
			return nil, fmt.Errorf("%w: node %s is not part of formular %s", ErrInvalid, nodeID, formularID)
		}
		order = append(order, id)
	}

	changes, err := chain.Reorder(linksOf(siblings, fnLink), order)
	if err != nil {
		return nil, chainError(err)
	}
	if len(changes) > 0 {
		b := &store.Batch{}
		for _, fn := range applyLinks(siblings, changes, fnLink, setFNNext(c.timestamp())) {
			b.PutFormularNode(fn)
		}
		if err := c.store.Write(b); err != nil {
			return nil, fmt.Errorf("failed to reorder formular nodes: %v", err)
		}
	}

	s, err := c.load()
	if err != nil {
		return nil, err
	}
	return c.orderedFormularNodes(s, formularID), nil
}
