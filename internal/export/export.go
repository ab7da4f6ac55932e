// Package export renders a calculation, its formulars and their nodes as a
// YAML document, each level in chain order.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/sivaram/calc-admin/internal/model"
	"gopkg.in/yaml.v3"
)

type Calculation struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Formulars []Formular `yaml:"formulars"`
}

type Formular struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Nodes []Node `yaml:"nodes"`
}

type Node struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Data string `yaml:"data,omitempty"`
}

type CalculationGetter interface {
	Get(ctx context.Context, id string) (*model.Calculation, error)
}

type FormularGetter interface {
	Get(ctx context.Context, id string) (*model.Formular, error)
}

// Build fetches the calculation and every member formular.
func Build(ctx context.Context, calcs CalculationGetter, formulars FormularGetter, calculationID string) (*Calculation, error) {
	calc, err := calcs.Get(ctx, calculationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation %s: %w", calculationID, err)
	}

	out := &Calculation{ID: calc.ID, Name: calc.Name, Formulars: []Formular{}}
	for _, cf := range calc.Formulars {
		f, err := formulars.Get(ctx, cf.FormularID)
		if err != nil {
			return nil, fmt.Errorf("failed to get formular %s: %w", cf.FormularID, err)
		}
		entry := Formular{ID: f.ID, Name: f.Name, Nodes: []Node{}}
		for _, fn := range f.Nodes {
			n := Node{ID: fn.NodeID}
			if fn.Node != nil {
				n.Name = fn.Node.Name
				n.Data = fn.Node.NodeData
			}
			entry.Nodes = append(entry.Nodes, n)
		}
		out.Formulars = append(out.Formulars, entry)
	}
	return out, nil
}

func Write(w io.Writer, calc *Calculation) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(calc); err != nil {
		return fmt.Errorf("failed to encode calculation: %w", err)
	}
	return enc.Close()
}
