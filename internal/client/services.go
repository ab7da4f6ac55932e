package client

import (
	"context"
	"net/http"

	"github.com/sivaram/calc-admin/internal/model"
)

type NodeService struct{ c *Client }

func (s *NodeService) List(ctx context.Context) ([]model.Node, error) {
	var nodes []model.Node
	err := s.c.do(ctx, http.MethodGet, "/nodes", nil, &nodes)
	return nodes, err
}

func (s *NodeService) Get(ctx context.Context, id string) (*model.Node, error) {
	var n model.Node
	if err := s.c.do(ctx, http.MethodGet, escape("nodes", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NodeService) Create(ctx context.Context, in model.CreateNodeInput) (*model.Node, error) {
	var n model.Node
	if err := s.c.do(ctx, http.MethodPost, "/nodes", in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NodeService) Update(ctx context.Context, id string, in model.UpdateNodeInput) (*model.Node, error) {
	var n model.Node
	if err := s.c.do(ctx, http.MethodPut, escape("nodes", id), in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NodeService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, escape("nodes", id), nil, nil)
}

type FormularService struct{ c *Client }

func (s *FormularService) List(ctx context.Context) ([]model.Formular, error) {
	var formulars []model.Formular
	err := s.c.do(ctx, http.MethodGet, "/formulars", nil, &formulars)
	return formulars, err
}

func (s *FormularService) Get(ctx context.Context, id string) (*model.Formular, error) {
	var f model.Formular
	if err := s.c.do(ctx, http.MethodGet, escape("formulars", id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FormularService) Create(ctx context.Context, in model.CreateFormularInput) (*model.Formular, error) {
	var f model.Formular
	if err := s.c.do(ctx, http.MethodPost, "/formulars", in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FormularService) Update(ctx context.Context, id string, in model.UpdateFormularInput) (*model.Formular, error) {
	var f model.Formular
	if err := s.c.do(ctx, http.MethodPut, escape("formulars", id), in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FormularService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, escape("formulars", id), nil, nil)
}

// Nodes returns the formular's memberships in chain order.
func (s *FormularService) Nodes(ctx context.Context, id string) ([]model.FormularNode, error) {
	var fns []model.FormularNode
	err := s.c.do(ctx, http.MethodGet, escape("formulars", id, "nodes"), nil, &fns)
	return fns, err
}

func (s *FormularService) AddNode(ctx context.Context, id string, in model.AddNodeInput) (*model.FormularNode, error) {
	var fn model.FormularNode
	if err := s.c.do(ctx, http.MethodPost, escape("formulars", id, "nodes"), in, &fn); err != nil {
		return nil, err
	}
	return &fn, nil
}

func (s *FormularService) RemoveNode(ctx context.Context, id, nodeID string) error {
	return s.c.do(ctx, http.MethodDelete, escape("formulars", id, "nodes", nodeID), nil, nil)
}

func (s *FormularService) ReorderNodes(ctx context.Context, id string, in model.ReorderNodesInput) ([]model.FormularNode, error) {
	var fns []model.FormularNode
	err := s.c.do(ctx, http.MethodPut, escape("formulars", id, "nodes", "reorder"), in, &fns)
	return fns, err
}

type CalculationService struct{ c *Client }

func (s *CalculationService) List(ctx context.Context) ([]model.Calculation, error) {
	var calcs []model.Calculation
	err := s.c.do(ctx, http.MethodGet, "/calculations", nil, &calcs)
	return calcs, err
}

func (s *CalculationService) Get(ctx context.Context, id string) (*model.Calculation, error) {
	var calc model.Calculation
	if err := s.c.do(ctx, http.MethodGet, escape("calculations", id), nil, &calc); err != nil {
		return nil, err
	}
	return &calc, nil
}

func (s *CalculationService) Create(ctx context.Context, in model.CreateCalculationInput) (*model.Calculation, error) {
	var calc model.Calculation
	if err := s.c.do(ctx, http.MethodPost, "/calculations", in, &calc); err != nil {
		return nil, err
	}
	return &calc, nil
}

func (s *CalculationService) Update(ctx context.Context, id string, in model.UpdateCalculationInput) (*model.Calculation, error) {
	var calc model.Calculation
	if err := s.c.do(ctx, http.MethodPut, escape("calculations", id), in, &calc); err != nil {
		return nil, err
	}
	return &calc, nil
}

func (s *CalculationService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, escape("calculations", id), nil, nil)
}

func (s *CalculationService) Formulars(ctx context.Context, id string) ([]model.CalculationFormular, error) {
	var cfs []model.CalculationFormular
	err := s.c.do(ctx, http.MethodGet, escape("calculations", id, "formulars"), nil, &cfs)
	return cfs, err
}

func (s *CalculationService) AddFormular(ctx context.Context, id string, in model.AddFormularInput) (*model.CalculationFormular, error) {
	var cf model.CalculationFormular
	if err := s.c.do(ctx, http.MethodPost, escape("calculations", id, "formulars"), in, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

func (s *CalculationService) RemoveFormular(ctx context.Context, id, formularID string) error {
	return s.c.do(ctx, http.MethodDelete, escape("calculations", id, "formulars", formularID), nil, nil)
}

func (s *CalculationService) ReorderFormulars(ctx context.Context, id string, in model.ReorderFormularsInput) ([]model.CalculationFormular, error) {
	var cfs []model.CalculationFormular
	err := s.c.do(ctx, http.MethodPut, escape("calculations", id, "formulars", "reorder"), in, &cfs)
	return cfs, err
}
