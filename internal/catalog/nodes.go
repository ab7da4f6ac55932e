package catalog

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
)

func (c *Catalog) ListNodes() ([]model.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.load()
	if err != nil {
		c.logger.Errorf("Failed to load nodes: %v", err)
		return nil, err
	}

	records := make([]store.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		records = append(records, n)
	}
	byCreation(records, func(n store.Node) (string, string) { return n.CreatedAt, n.ID })

	nodes := make([]model.Node, 0, len(records))
	for _, n := range records {
		nodes = append(nodes, c.nodeView(s, n))
	}
	return nodes, nil
}

func (c *Catalog) GetNode(id string) (*model.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.logger.Infof("Fetching node: %s", id)
	s, err := c.load()
	if err != nil {
		return nil, err
	}
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %s", ErrNotFound, id)
	}
	view := c.nodeView(s, n)
	return &view, nil
}

func (c *Catalog) CreateNode(in model.CreateNodeInput) (*model.Node, error) {
	name, err := requireName("node", in.Name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.timestamp()
	n := store.Node{
		ID:        c.newID(),
		Name:      name,
		NodeData:  in.NodeData,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.PutNode(&n); err != nil {
		c.logger.Errorf("Failed to store node %s: %v", n.ID, err)
		return nil, fmt.Errorf("failed to store node: %v", err)
	}

	c.logger.Infof("Node %s created", n.ID)
	view := nodeModel(n)
	return &view, nil
}

func (c *Catalog) UpdateNode(id string, in model.UpdateNodeInput) (*model.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.store.GetNode(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: node %s", ErrNotFound, id)
	}

	if in.Name != nil {
		name, err := requireName("node", *in.Name)
		if err != nil {
			return nil, err
		}
		n.Name = name
	}
	if in.NodeData != nil {
		n.NodeData = *in.NodeData
	}
	n.UpdatedAt = c.timestamp()

	if err := c.store.PutNode(n); err != nil {
		c.logger.Errorf("Failed to update node %s: %v", id, err)
		return nil, fmt.Errorf("failed to update node: %v", err)
	}

	view := nodeModel(*n)
	return &view, nil
}

// DeleteNode removes the node and splices it out of every formular chain.
func (c *Catalog) DeleteNode(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Deleting node: %s", id)

	n, err := c.store.GetNode(id)
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("%w: node %s", ErrNotFound, id)
	}

	all, err := c.store.AllFormularNodes()
	if err != nil {
		return err
	}

	b := &store.Batch{}
	now := c.timestamp()
	for _, fn := range all {
		if fn.NodeID != id {
			continue
		}
		siblings, err := c.store.FormularNodes(fn.FormularID)
		if err != nil {
			return err
		}
		if _, err := spliceFormularNode(b, siblings, fn, now); err != nil {
			return fmt.Errorf("failed to unlink node %s from formular %s: %w", id, fn.FormularID, chainError(err))
		}
		c.logger.Infof("Node %s removed from formular %s", id, fn.FormularID)
	}
	b.DeleteNode(id)

	if err := c.store.Write(b); err != nil {
		return fmt.Errorf("failed to delete node: %v", err)
	}
	return nil
}
