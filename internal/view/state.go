// Package view holds the client-side presentation state: the product list
// mirrored from the server and the form, which is either creating a new
// product or editing an existing one. All transitions are pure in-memory
// operations; callers perform the API calls and feed back the results.
package view

import (
	"strconv"

	"product-catalog/internal/model"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Form mirrors the three editable fields as entered text. Price stays a
// string until submit so invalid input survives a rejected request.
type Form struct {
	Name        string
	Price       string
	Description string
}

// Input converts the form to the wire shape, sending price as a JSON string.
func (f Form) Input() model.ProductInput {
	return model.ProductInput{
		Name:        f.Name,
		Price:       marshalPrice(f.Price),
		Description: f.Description,
	}
}

func marshalPrice(price string) []byte {
	if price == "" {
		return nil
	}
	return []byte(strconv.Quote(price))
}

// State is the view model. Products keeps server order; index gives O(1)
// lookup by hex id.
type State struct {
	Products  []model.Product
	Form      Form
	LastError string

	editingID string
	index     map[string]int
}

func NewState() *State {
	return &State{index: make(map[string]int)}
}

func (s *State) Mode() Mode {
	if s.editingID != "" {
		return ModeEdit
	}
	return ModeCreate
}

// EditingID returns the id of the product being edited, or "" in create mode.
func (s *State) EditingID() string {
	return s.editingID
}

// Load replaces the product list with a fresh server snapshot.
func (s *State) Load(products []model.Product) {
	s.Products = products
	s.reindex()
	s.LastError = ""
}

// Created appends the canonical record returned by a successful create and
// clears the form.
func (s *State) Created(p model.Product) {
	s.Products = append(s.Products, p)
	s.index[p.ID.Hex()] = len(s.Products) - 1
	s.Form = Form{}
	s.LastError = ""
}

// BeginEdit switches to edit mode, pre-populating the form from the listed
// product. Returns false if the id is not in the list.
func (s *State) BeginEdit(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	p := s.Products[i]
	s.editingID = id
	s.Form = Form{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		Description: p.Description,
	}
	s.LastError = ""
	return true
}

// Updated replaces the matching entry with the canonical updated record,
// returns to create mode, and clears the form.
func (s *State) Updated(p model.Product) {
	if i, ok := s.index[p.ID.Hex()]; ok {
		s.Products[i] = p
	}
	s.editingID = ""
	s.Form = Form{}
	s.LastError = ""
}

// CancelEdit returns to create mode without submitting.
func (s *State) CancelEdit() {
	s.editingID = ""
	s.Form = Form{}
	s.LastError = ""
}

// Removed drops the entry with the given id after a successful delete.
func (s *State) Removed(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.Products = append(s.Products[:i], s.Products[i+1:]...)
	s.reindex()
	if s.editingID == id {
		s.editingID = ""
		s.Form = Form{}
	}
	s.LastError = ""
}

// Fail records a surfaced error. Products, mode, and form are untouched so
// the user can correct and resubmit.
func (s *State) Fail(msg string) {
	s.LastError = msg
}

func (s *State) reindex() {
	s.index = make(map[string]int, len(s.Products))
	for i, p := range s.Products {
		s.index[p.ID.Hex()] = i
	}
}
