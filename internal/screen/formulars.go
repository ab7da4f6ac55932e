package screen

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/model"
)

type FormularAPI interface {
	List(ctx context.Context) ([]model.Formular, error)
	Create(ctx context.Context, in model.CreateFormularInput) (*model.Formular, error)
	Update(ctx context.Context, id string, in model.UpdateFormularInput) (*model.Formular, error)
	Delete(ctx context.Context, id string) error
	AddNode(ctx context.Context, id string, in model.AddNodeInput) (*model.FormularNode, error)
	RemoveNode(ctx context.Context, id, nodeID string) error
	ReorderNodes(ctx context.Context, id string, in model.ReorderNodesInput) ([]model.FormularNode, error)
}

// Formulars manages formulars and their node memberships. The node list is
// loaded alongside to offer link candidates.
type Formulars struct {
	api   FormularAPI
	state *list[model.Formular]
	nodes *list[model.Node]
}

func NewFormulars(api FormularAPI, nodes NodeAPI, logger *logrus.Logger) *Formulars {
	return &Formulars{
		api:   api,
		state: newList(logger, "formulars", api.List, formularRows),
		nodes: newList(logger, "nodes", nodes.List, nodeRows),
	}
}

func formularRows(formulars []model.Formular) []Row {
	rows := make([]Row, 0, len(formulars))
	for _, f := range formulars {
		row := Row{Key: f.ID, Title: f.Name}
		for _, fn := range f.Nodes {
			child := Row{Key: fn.ID, Ref: fn.NodeID, Title: fn.NodeID}
			if fn.Node != nil {
				child.Title = fn.Node.Name
				child.Detail = fn.Node.NodeData
			}
			row.Children = append(row.Children, child)
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Formulars) Title() string { return "Formulars" }

func (s *Formulars) ChildNoun() string { return "node" }

// Mount loads formulars and nodes. A failed node load is only logged.
func (s *Formulars) Mount(ctx context.Context) {
	s.state.load(ctx)
	s.nodes.load(ctx)
}

func (s *Formulars) Refresh(ctx context.Context) error {
	s.nodes.load(ctx)
	return s.state.load(ctx)
}

func (s *Formulars) Page() Page { return s.state.page(s.Title()) }

func (s *Formulars) Create(ctx context.Context, f Form) error {
	return s.state.mutate(ctx, "Failed to create formular", func() error {
		_, err := s.api.Create(ctx, model.CreateFormularInput{Name: f.Name})
		return err
	})
}

func (s *Formulars) Edit(id string) (Form, bool) {
	f, ok := s.state.find(func(f model.Formular) bool { return f.ID == id })
	if !ok {
		return Form{}, false
	}
	return Form{Name: f.Name}, true
}

func (s *Formulars) Update(ctx context.Context, id string, f Form) error {
	return s.state.mutate(ctx, "Failed to update formular", func() error {
		_, err := s.api.Update(ctx, id, model.UpdateFormularInput{Name: strPtr(f.Name)})
		return err
	})
}

func (s *Formulars) Delete(ctx context.Context, id string) error {
	return s.state.mutate(ctx, "Failed to delete formular", func() error {
		return s.api.Delete(ctx, id)
	})
}

// Candidates lists the loaded nodes not yet linked into the formular.
func (s *Formulars) Candidates(formularID string) []Row {
	f, ok := s.state.find(func(f model.Formular) bool { return f.ID == formularID })
	if !ok {
		return nil
	}
	linked := make(map[string]bool, len(f.Nodes))
	for _, fn := range f.Nodes {
		linked[fn.NodeID] = true
	}

	s.nodes.mu.RLock()
	defer s.nodes.mu.RUnlock()
	var rows []Row
	for _, n := range s.nodes.items {
		if !linked[n.ID] {
			rows = append(rows, Row{Key: n.ID, Title: n.Name, Detail: n.NodeData})
		}
	}
	return rows
}

func (s *Formulars) Link(ctx context.Context, formularID, nodeID string) error {
	return s.state.mutate(ctx, "Failed to add node", func() error {
		_, err := s.api.AddNode(ctx, formularID, model.AddNodeInput{NodeID: nodeID})
		return err
	})
}

func (s *Formulars) Unlink(ctx context.Context, formularID, nodeID string) error {
	return s.state.mutate(ctx, "Failed to remove node", func() error {
		return s.api.RemoveNode(ctx, formularID, nodeID)
	})
}

// Move shifts a node delta positions within the displayed order and sends
// the whole new order. Moving past either end is a no-op.
func (s *Formulars) Move(ctx context.Context, formularID, nodeID string, delta int) error {
	f, ok := s.state.find(func(f model.Formular) bool { return f.ID == formularID })
	if !ok {
		return nil
	}
	order := make([]string, len(f.Nodes))
	from := -1
	for i, fn := range f.Nodes {
		order[i] = fn.NodeID
		if fn.NodeID == nodeID {
			from = i
		}
	}
	if from < 0 {
		return nil
	}
	order, moved := shift(order, from, delta)
	if !moved {
		return nil
	}
	return s.state.mutate(ctx, "Failed to reorder nodes", func() error {
		_, err := s.api.ReorderNodes(ctx, formularID, model.ReorderNodesInput{NodeOrder: order})
		return err
	})
}
