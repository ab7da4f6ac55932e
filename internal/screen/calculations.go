package screen

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/model"
)

type CalculationAPI interface {
	List(ctx context.Context) ([]model.Calculation, error)
	Create(ctx context.Context, in model.CreateCalculationInput) (*model.Calculation, error)
	Update(ctx context.Context, id string, in model.UpdateCalculationInput) (*model.Calculation, error)
	Delete(ctx context.Context, id string) error
	AddFormular(ctx context.Context, id string, in model.AddFormularInput) (*model.CalculationFormular, error)
	RemoveFormular(ctx context.Context, id, formularID string) error
	ReorderFormulars(ctx context.Context, id string, in model.ReorderFormularsInput) ([]model.CalculationFormular, error)
}

type FormularLister interface {
	List(ctx context.Context) ([]model.Formular, error)
}

type Calculations struct {
	api       CalculationAPI
	state     *list[model.Calculation]
	formulars *list[model.Formular]
}

func NewCalculations(api CalculationAPI, formulars FormularLister, logger *logrus.Logger) *Calculations {
	return &Calculations{
		api:       api,
		state:     newList(logger, "calculations", api.List, calculationRows),
		formulars: newList(logger, "formulars", formulars.List, formularRows),
	}
}

func calculationRows(calcs []model.Calculation) []Row {
	rows := make([]Row, 0, len(calcs))
	for _, c := range calcs {
		row := Row{Key: c.ID, Title: c.Name}
		for _, cf := range c.Formulars {
			child := Row{Key: cf.ID, Ref: cf.FormularID, Title: cf.FormularID}
			if cf.Formular != nil {
				child.Title = cf.Formular.Name
			}
			row.Children = append(row.Children, child)
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Calculations) Title() string { return "Calculations" }

func (s *Calculations) ChildNoun() string { return "formular" }

func (s *Calculations) Mount(ctx context.Context) {
	s.state.load(ctx)
	s.formulars.load(ctx)
}

func (s *Calculations) Refresh(ctx context.Context) error {
	s.formulars.load(ctx)
	return s.state.load(ctx)
}

func (s *Calculations) Page() Page { return s.state.page(s.Title()) }

func (s *Calculations) Create(ctx context.Context, f Form) error {
	return s.state.mutate(ctx, "Failed to create calculation", func() error {
		_, err := s.api.Create(ctx, model.CreateCalculationInput{Name: f.Name})
		return err
	})
}

func (s *Calculations) Edit(id string) (Form, bool) {
	c, ok := s.state.find(func(c model.Calculation) bool { return c.ID == id })
	if !ok {
		return Form{}, false
	}
	return Form{Name: c.Name}, true
}

func (s *Calculations) Update(ctx context.Context, id string, f Form) error {
	return s.state.mutate(ctx, "Failed to update calculation", func() error {
		_, err := s.api.Update(ctx, id, model.UpdateCalculationInput{Name: strPtr(f.Name)})
		return err
	})
}

func (s *Calculations) Delete(ctx context.Context, id string) error {
	return s.state.mutate(ctx, "Failed to delete calculation", func() error {
		return s.api.Delete(ctx, id)
	})
}

func (s *Calculations) Candidates(calculationID string) []Row {
	c, ok := s.state.find(func(c model.Calculation) bool { return c.ID == calculationID })
	if !ok {
		return nil
	}
	linked := make(map[string]bool, len(c.Formulars))
	for _, cf := range c.Formulars {
		linked[cf.FormularID] = true
	}

	s.formulars.mu.RLock()
	defer s.formulars.mu.RUnlock()
	var rows []Row
	for _, f := range s.formulars.items {
		if !linked[f.ID] {
			rows = append(rows, Row{Key: f.ID, Title: f.Name})
		}
	}
	return rows
}

func (s *Calculations) Link(ctx context.Context, calculationID, formularID string) error {
	return s.state.mutate(ctx, "Failed to add formular", func() error {
		_, err := s.api.AddFormular(ctx, calculationID, model.AddFormularInput{FormularID: formularID})
		return err
	})
}

func (s *Calculations) Unlink(ctx context.Context, calculationID, formularID string) error {
	return s.state.mutate(ctx, "Failed to remove formular", func() error {
		return s.api.RemoveFormular(ctx, calculationID, formularID)
	})
}

func (s *Calculations) Move(ctx context.Context, calculationID, formularID string, delta int) error {
	c, ok := s.state.find(func(c model.Calculation) bool { return c.ID == calculationID })
	if !ok {
		return nil
	}
	order := make([]string, len(c.Formulars))
	from := -1
	for i, cf := range c.Formulars {
		order[i] = cf.FormularID
		if cf.FormularID == formularID {
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
	return s.state.mutate(ctx, "Failed to reorder formulars", func() error {
		_, err := s.api.ReorderFormulars(ctx, calculationID, model.ReorderFormularsInput{FormularOrder: order})
		return err
	})
}
