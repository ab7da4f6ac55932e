// Package model holds the JSON shapes exchanged over the /api boundary.
package model

type Node struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	NodeData      string         `json:"nodeData"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	FormularNodes []FormularNode `json:"formularNodes"`
}

type Formular struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	CreatedAt            string                `json:"createdAt"`
	UpdatedAt            string                `json:"updatedAt"`
	Nodes                []FormularNode        `json:"nodes"`
	CalculationFormulars []CalculationFormular `json:"calculationFormulars"`
}

type Calculation struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
	Formulars []CalculationFormular `json:"formulars"`
}

// FormularNode places a Node inside a Formular. NextID points at the
// FormularNode that follows it; nil marks the tail.
type FormularNode struct {
	ID         string    `json:"id"`
	FormularID string    `json:"formularId"`
	NodeID     string    `json:"nodeId"`
	NextID     *string   `json:"nextId"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
	Node       *Node     `json:"node,omitempty"`
	Formular   *Formular `json:"formular,omitempty"`
}

// CalculationFormular places a Formular inside a Calculation.
type CalculationFormular struct {
	ID            string       `json:"id"`
	CalculationID string       `json:"calculationId"`
	FormularID    string       `json:"formularId"`
	NextID        *string      `json:"nextId"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`
	Calculation   *Calculation `json:"calculation,omitempty"`
	Formular      *Formular    `json:"formular,omitempty"`
}

type CreateNodeInput struct {
	Name     string `json:"name" validate:"required"`
	NodeData string `json:"nodeData"`
}

type UpdateNodeInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	NodeData *string `json:"nodeData,omitempty"`
}

type CreateFormularInput struct {
	Name string `json:"name" validate:"required"`
}

type UpdateFormularInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
}

type CreateCalculationInput struct {
	Name string `json:"name" validate:"required"`
}

type UpdateCalculationInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
}

// AddNodeInput links a Node into a Formular. NextID, when set, is the
// FormularNode the new record is inserted before.
type AddNodeInput struct {
	NodeID string  `json:"nodeId" validate:"required"`
	NextID *string `json:"nextId,omitempty"`
}

type AddFormularInput struct {
	FormularID string  `json:"formularId" validate:"required"`
	NextID     *string `json:"nextId,omitempty"`
}

type ReorderNodesInput struct {
	NodeOrder []string `json:"nodeOrder" validate:"dive,required"`
}

type ReorderFormularsInput struct {
	FormularOrder []string `json:"formularOrder" validate:"dive,required"`
}
