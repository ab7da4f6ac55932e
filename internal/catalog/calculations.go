package catalog

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/chain"
	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
)

func (c *Catalog) ListCalculations() ([]model.Calculation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.load()
	if err != nil {
		c.logger.Errorf("Failed to load calculations: %v", err)
		return nil, err
	}

	records := make([]store.Calculation, 0, len(s.calculations))
	for _, calc := range s.calculations {
		records = append(records, calc)
	}
	byCreation(records, func(calc store.Calculation) (string, string) { return calc.CreatedAt, calc.ID })

	calcs := make([]model.Calculation, 0, len(records))
	for _, calc := range records {
		calcs = append(calcs, c.calculationView(s, calc))
	}
	return calcs, nil
}

func (c *Catalog) GetCalculation(id string) (*model.Calculation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.logger.Infof("Fetching calculation: %s", id)
	s, err := c.load()
	if err != nil {
		return nil, err
	}
	calc, ok := s.calculations[id]
	if !ok {
		return nil, fmt.Errorf("%w: calculation %s", ErrNotFound, id)
	}
	view := c.calculationView(s, calc)
	return &view, nil
}

func (c *Catalog) CreateCalculation(in model.CreateCalculationInput) (*model.Calculation, error) {
	name, err := requireName("calculation", in.Name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.timestamp()
	calc := store.Calculation{ID: c.newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := c.store.PutCalculation(&calc); err != nil {
		c.logger.Errorf("Failed to store calculation %s: %v", calc.ID, err)
		return nil, fmt.Errorf("failed to store calculation: %v", err)
	}

	c.logger.Infof("Calculation %s created", calc.ID)
	view := calculationModel(calc)
	return &view, nil
}

func (c *Catalog) UpdateCalculation(id string, in model.UpdateCalculationInput) (*model.Calculation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	calc, err := c.store.GetCalculation(id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, fmt.Errorf("%w: calculation %s", ErrNotFound, id)
	}

	if in.Name != nil {
		name, err := requireName("calculation", *in.Name)
		if err != nil {
			return nil, err
		}
		calc.Name = name
	}
	calc.UpdatedAt = c.timestamp()

	if err := c.store.PutCalculation(calc); err != nil {
		return nil, fmt.Errorf("failed to update calculation: %v", err)
	}

	view := calculationModel(*calc)
	return &view, nil
}

// DeleteCalculation drops the calculation together with its memberships.
// The formulars themselves stay.
func (c *Catalog) DeleteCalculation(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Deleting calculation: %s", id)

	calc, err := c.store.GetCalculation(id)
	if err != nil {
		return err
	}
	if calc == nil {
		return fmt.Errorf("%w: calculation %s", ErrNotFound, id)
	}

	cfs, err := c.store.CalculationFormulars(id)
	if err != nil {
		return err
	}
	b := &store.Batch{}
	for i := range cfs {
		b.DeleteCalculationFormular(&cfs[i])
	}
	b.DeleteCalculation(id)

	if err := c.store.Write(b); err != nil {
		return fmt.Errorf("failed to delete calculation: %v", err)
	}
	return nil
}

func (c *Catalog) CalculationFormulars(calculationID string) ([]model.CalculationFormular, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.load()
	if err != nil {
		return nil, err
	}
	if _, ok := s.calculations[calculationID]; !ok {
		return nil, fmt.Errorf("%w: calculation %s", ErrNotFound, calculationID)
	}
	return c.orderedCalculationFormulars(s, calculationID), nil
}

// AddCalculationFormular links a formular into the calculation, at the tail
// or right before the membership named by in.NextID.
func (c *Catalog) AddCalculationFormular(calculationID string, in model.AddFormularInput) (*model.CalculationFormular, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Adding formular %s to calculation %s", in.FormularID, calculationID)

	calc, err := c.store.GetCalculation(calculationID)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, fmt.Errorf("%w: calculation %s", ErrNotFound, calculationID)
	}
	f, err := c.store.GetFormular(in.FormularID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formular %s does not exist", ErrInvalid, in.FormularID)
	}

	siblings, err := c.store.CalculationFormulars(calculationID)
	if err != nil {
		return nil, err
	}
	for _, cf := range siblings {
		if cf.FormularID == in.FormularID {
			return nil, fmt.Errorf("%w: formular %s is already part of calculation %s", ErrConflict, in.FormularID, calculationID)
		}
	}

	var before *string
	if in.NextID != nil && *in.NextID != "" {
		before = in.NextID
	}

	now := c.timestamp()
	cf := store.CalculationFormular{
		ID:            c.newID(),
		CalculationID: calculationID,
		FormularID:    in.FormularID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	changes, err := chain.Insert(linksOf(siblings, cfLink), cf.ID, before)
	if err != nil {
		c.logger.Warnf("Cannot insert formular %s into calculation %s: %v", in.FormularID, calculationID, err)
		return nil, chainError(err)
	}
	cf.NextID = changes[0].Next

	b := &store.Batch{}
	b.PutCalculationFormular(&cf)
	for _, sib := range applyLinks(siblings, changes[1:], cfLink, setCFNext(now)) {
		b.PutCalculationFormular(sib)
	}
	if err := c.store.Write(b); err != nil {
		c.logger.Errorf("Failed to store calculation formular %s: %v", cf.ID, err)
		return nil, fmt.Errorf("failed to store calculation formular: %v", err)
	}

	view := calculationFormularModel(cf)
	fm := formularModel(*f)
	view.Formular = &fm
	return &view, nil
}

func (c *Catalog) RemoveCalculationFormular(calculationID, formularID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Removing formular %s from calculation %s", formularID, calculationID)

	siblings, err := c.store.CalculationFormulars(calculationID)
	if err != nil {
		return err
	}
	var target *store.CalculationFormular
	for i := range siblings {
		if siblings[i].FormularID == formularID {
			target = &siblings[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: formular %s is not part of calculation %s", ErrNotFound, formularID, calculationID)
	}

	b := &store.Batch{}
	if _, err := spliceCalculationFormular(b, siblings, *target, c.timestamp()); err != nil {
		return chainError(err)
	}
	if err := c.store.Write(b); err != nil {
		return fmt.Errorf("failed to remove calculation formular: %v", err)
	}
	return nil
}

// ReorderCalculationFormulars rethreads the calculation's chain to follow
// formularOrder, which must list every member formular exactly once.
func (c *Catalog) ReorderCalculationFormulars(calculationID string, formularOrder []string) ([]model.CalculationFormular, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("Reordering formulars of calculation %s: %v", calculationID, formularOrder)

	calc, err := c.store.GetCalculation(calculationID)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, fmt.Errorf("%w: calculation %s", ErrNotFound, calculationID)
	}

	siblings, err := c.store.CalculationFormulars(calculationID)
	if err != nil {
		return nil, err
	}
	byFormular := make(map[string]string, len(siblings))
	for _, cf := range siblings {
		byFormular[cf.FormularID] = cf.ID
	}
	order := make([]string, 0, len(formularOrder))
	for _, formularID := range formularOrder {
		id, ok := byFormular[formularID]
		if !ok {
			return nil, fmt.Errorf("%w: formular %s is not part of calculation %s", ErrInvalid, formularID, calculationID)
		}
		order = append(order, id)
	}

	changes, err := chain.Reorder(linksOf(siblings, cfLink), order)
	if err != nil {
		return nil, chainError(err)
	}
	if len(changes) > 0 {
		b := &store.Batch{}
		for _, cf := range applyLinks(siblings, changes, cfLink, setCFNext(c.timestamp())) {
			b.PutCalculationFormular(cf)
		}
		if err := c.store.Write(b); err != nil {
			return nil, fmt.Errorf("failed to reorder calculation formulars: %v", err)
		}
	}

	s, err := c.load()
	if err != nil {
		return nil, err
	}
	return c.orderedCalculationFormulars(s, calculationID), nil
}
