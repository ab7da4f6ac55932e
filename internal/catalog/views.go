package catalog

import (
	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
)

func fnCreated(fn store.FormularNode) string         { return fn.CreatedAt }
func cfCreated(cf store.CalculationFormular) string { return cf.CreatedAt }

func nodeModel(n store.Node) model.Node {
	return model.Node{
		ID:            n.ID,
		Name:          n.Name,
		NodeData:      n.NodeData,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
		FormularNodes: []model.FormularNode{},
	}
}

func formularModel(f store.Formular) model.Formular {
	return model.Formular{
		ID:                   f.ID,
		Name:                 f.Name,
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
		Nodes:                []model.FormularNode{},
		CalculationFormulars: []model.CalculationFormular{},
	}
}

func calculationModel(calc store.Calculation) model.Calculation {
	return model.Calculation{
		ID:        calc.ID,
		Name:      calc.Name,
		CreatedAt: calc.CreatedAt,
		UpdatedAt: calc.UpdatedAt,
		Formulars: []model.CalculationFormular{},
	}
}

func formularNodeModel(fn store.FormularNode) model.FormularNode {
	return model.FormularNode{
		ID:         fn.ID,
		FormularID: fn.FormularID,
		NodeID:     fn.NodeID,
		NextID:     fn.NextID,
		CreatedAt:  fn.CreatedAt,
		UpdatedAt:  fn.UpdatedAt,
	}
}

func calculationFormularModel(cf store.CalculationFormular) model.CalculationFormular {
	return model.CalculationFormular{
		ID:            cf.ID,
		CalculationID: cf.CalculationID,
		FormularID:    cf.FormularID,
		NextID:        cf.NextID,
		CreatedAt:     cf.CreatedAt,
		UpdatedAt:     cf.UpdatedAt,
	}
}

func (s *snapshot) formularNodesOf(formularID string) []store.FormularNode {
	var out []store.FormularNode
	for _, fn := range s.fns {
		if fn.FormularID == formularID {
			out = append(out, fn)
		}
	}
	return out
}

func (s *snapshot) calculationFormularsOf(calculationID string) []store.CalculationFormular {
	var out []store.CalculationFormular
	for _, cf := range s.cfs {
		if cf.CalculationID == calculationID {
			out = append(out, cf)
		}
	}
	return out
}

// nodeView lists the memberships referencing the node without embedding.
func (c *Catalog) nodeView(s *snapshot, n store.Node) model.Node {
	view := nodeModel(n)
	for _, fn := range s.fns {
		if fn.NodeID == n.ID {
			view.FormularNodes = append(view.FormularNodes, formularNodeModel(fn))
		}
	}
	return view
}

// orderedFormularNodes returns the memberships of a formular in chain order,
// each carrying its node.
func (c *Catalog) orderedFormularNodes(s *snapshot, formularID string) []model.FormularNode {
	members := ordered(c, "formular "+formularID, s.formularNodesOf(formularID), fnLink, fnCreated)
	out := make([]model.FormularNode, 0, len(members))
	for _, fn := range members {
		m := formularNodeModel(fn)
		if n, ok := s.nodes[fn.NodeID]; ok {
			nm := nodeModel(n)
			m.Node = &nm
		}
		out = append(out, m)
	}
	return out
}

func (c *Catalog) formularView(s *snapshot, f store.Formular) model.Formular {
	view := formularModel(f)
	view.Nodes = c.orderedFormularNodes(s, f.ID)
	for _, cf := range s.cfs {
		if cf.FormularID == f.ID {
			view.CalculationFormulars = append(view.CalculationFormulars, calculationFormularModel(cf))
		}
	}
	return view
}

func (c *Catalog) orderedCalculationFormulars(s *snapshot, calculationID string) []model.CalculationFormular {
	members := ordered(c, "calculation "+calculationID, s.calculationFormularsOf(calculationID), cfLink, cfCreated)
	out := make([]model.CalculationFormular, 0, len(members))
	for _, cf := range members {
		m := calculationFormularModel(cf)
		if f, ok := s.formulars[cf.FormularID]; ok {
			fm := formularModel(f)
			m.Formular = &fm
		}
		out = append(out, m)
	}
	return out
}

func (c *Catalog) calculationView(s *snapshot, calc store.Calculation) model.Calculation {
	view := calculationModel(calc)
	view.Formulars = c.orderedCalculationFormulars(s, calc.ID)
	return view
}
