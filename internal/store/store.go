package store

import (
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	nodePrefix                = "node/"
	formularPrefix            = "formular/"
	calculationPrefix         = "calculation/"
	formularNodePrefix        = "formular_node/"
	calculationFormularPrefix = "calculation_formular/"
)

type Store struct {
	db *leveldb.DB
}

type Node struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NodeData  string `json:"nodeData"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Formular struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Calculation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type FormularNode struct {
	ID         string  `json:"id"`
	FormularID string  `json:"formularId"`
	NodeID     string  `json:"nodeId"`
	NextID     *string `json:"nextId"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type CalculationFormular struct {
	ID            string  `json:"id"`
	CalculationID string  `json:"calculationId"`
	FormularID    string  `json:"formularId"`
	NextID        *string `json:"nextId"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func New(path string) (*Store, error) {
	db, err := leveldb.OpenFile(filepath.Clean(path), nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func formularNodeKey(formularID, id string) string {
	return formularNodePrefix + formularID + "/" + id
}

func calculationFormularKey(calculationID, id string) string {
	return calculationFormularPrefix + calculationID + "/" + id
}

func put(s *Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(key), data, nil)
}

// get returns nil, nil when key is absent.
func get[T any](s *Store, key string) (*T, error) {
	data, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func list[T any](s *Store, prefix string) ([]T, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	items := []T{}
	for iter.Next() {
		var v T
		if err := json.Unmarshal(iter.Value(), &v); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) PutNode(node *Node) error {
	return put(s, nodePrefix+node.ID, node)
}

func (s *Store) GetNode(id string) (*Node, error) {
	return get[Node](s, nodePrefix+id)
}

func (s *Store) ListNodes() ([]Node, error) {
	return list[Node](s, nodePrefix)
}

func (s *Store) PutFormular(f *Formular) error {
	return put(s, formularPrefix+f.ID, f)
}

func (s *Store) GetFormular(id string) (*Formular, error) {
	return get[Formular](s, formularPrefix+id)
}

func (s *Store) ListFormulars() ([]Formular, error) {
	return list[Formular](s, formularPrefix)
}

func (s *Store) PutCalculation(c *Calculation) error {
	return put(s, calculationPrefix+c.ID, c)
}

func (s *Store) GetCalculation(id string) (*Calculation, error) {
	return get[Calculation](s, calculationPrefix+id)
}

func (s *Store) ListCalculations() ([]Calculation, error) {
	return list[Calculation](s, calculationPrefix)
}

// FormularNodes lists the memberships of one formular in key order.
func (s *Store) FormularNodes(formularID string) ([]FormularNode, error) {
	return list[FormularNode](s, formularNodePrefix+formularID+"/")
}

func (s *Store) AllFormularNodes() ([]FormularNode, error) {
	return list[FormularNode](s, formularNodePrefix)
}

// CalculationFormulars lists the memberships of one calculation in key order.
func (s *Store) CalculationFormulars(calculationID string) ([]CalculationFormular, error) {
	return list[CalculationFormular](s, calculationFormularPrefix+calculationID+"/")
}

func (s *Store) AllCalculationFormulars() ([]CalculationFormular, error) {
	return list[CalculationFormular](s, calculationFormularPrefix)
}

// Write applies every operation of b atomically.
func (s *Store) Write(b *Batch) error {
	if b.err != nil {
		return b.err
	}
	return s.db.Write(&b.b, nil)
}

// Batch collects writes for Store.Write. The first encoding error sticks
// and is reported by Write.
type Batch struct {
	b   leveldb.Batch
	err error
}

func (b *Batch) put(key string, v any) {
	if b.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		b.err = err
		return
	}
	b.b.Put([]byte(key), data)
}

func (b *Batch) Len() int {
	return b.b.Len()
}

func (b *Batch) PutNode(n *Node) { b.put(nodePrefix+n.ID, n) }

func (b *Batch) DeleteNode(id string) { b.b.Delete([]byte(nodePrefix + id)) }

func (b *Batch) PutFormular(f *Formular) { b.put(formularPrefix+f.ID, f) }

func (b *Batch) DeleteFormular(id string) { b.b.Delete([]byte(formularPrefix + id)) }

func (b *Batch) PutCalculation(c *Calculation) { b.put(calculationPrefix+c.ID, c) }

func (b *Batch) DeleteCalculation(id string) { b.b.Delete([]byte(calculationPrefix + id)) }

func (b *Batch) PutFormularNode(fn *FormularNode) {
	b.put(formularNodeKey(fn.FormularID, fn.ID), fn)
}

func (b *Batch) DeleteFormularNode(fn *FormularNode) {
	b.b.Delete([]byte(formularNodeKey(fn.FormularID, fn.ID)))
}

func (b *Batch) PutCalculationFormular(cf *CalculationFormular) {
	b.put(calculationFormularKey(cf.CalculationID, cf.ID), cf)
}

func (b *Batch) DeleteCalculationFormular(cf *CalculationFormular) {
	b.b.Delete([]byte(calculationFormularKey(cf.CalculationID, cf.ID)))
}
