package screen

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/model"
)

type NodeAPI interface {
	List(ctx context.Context) ([]model.Node, error)
	Create(ctx context.Context, in model.CreateNodeInput) (*model.Node, error)
	Update(ctx context.Context, id string, in model.UpdateNodeInput) (*model.Node, error)
	Delete(ctx context.Context, id string) error
}

type Nodes struct {
	api   NodeAPI
	state *list[model.Node]
}

func NewNodes(api NodeAPI, logger *logrus.Logger) *Nodes {
	return &Nodes{
		api:   api,
		state: newList(logger, "nodes", api.List, nodeRows),
	}
}

func nodeRows(nodes []model.Node) []Row {
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, Row{Key: n.ID, Title: n.Name, Detail: n.NodeData})
	}
	return rows
}

func (s *Nodes) Title() string { return "Nodes" }

func (s *Nodes) Mount(ctx context.Context) { s.state.load(ctx) }

func (s *Nodes) Refresh(ctx context.Context) error { return s.state.load(ctx) }

func (s *Nodes) Page() Page { return s.state.page(s.Title()) }

func (s *Nodes) Create(ctx context.Context, f Form) error {
	return s.state.mutate(ctx, "Failed to create node", func() error {
		_, err := s.api.Create(ctx, model.CreateNodeInput{Name: f.Name, NodeData: f.Data})
		return err
	})
}

func (s *Nodes) Edit(id string) (Form, bool) {
	n, ok := s.state.find(func(n model.Node) bool { return n.ID == id })
	if !ok {
		return Form{}, false
	}
	return Form{Name: n.Name, Data: n.NodeData}, true
}

func (s *Nodes) Update(ctx context.Context, id string, f Form) error {
	return s.state.mutate(ctx, "Failed to update node", func() error {
		_, err := s.api.Update(ctx, id, model.UpdateNodeInput{Name: strPtr(f.Name), NodeData: strPtr(f.Data)})
		return err
	})
}

func (s *Nodes) Delete(ctx context.Context, id string) error {
	return s.state.mutate(ctx, "Failed to delete node", func() error {
		return s.api.Delete(ctx, id)
	})
}
