package frontend

import (
	"fmt"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/desk/viewmodel"
	"orderdesk/pkg/observable"
)

// Screen is one entity surface of the console: a list, a form and a status
// line, all backed by a view-model. The console only dispatches commands and
// renders cells; every rule lives behind this interface.
type Screen interface {
	Name() string
	Columns() []string
	Rows() [][]string
	FieldNames() []string
	Field(name string) string
	Status() string
	StatusCell() *observable.Value[string]
	HasSelection() bool

	Load()
	Create()
	Update()
	Delete()
	SelectRow(row int) bool
	Deselect()
	SetField(name, value string)
}

type column[E any] struct {
	header string
	value  func(*E) string
}

type entityScreen[E any] struct {
	name    string
	vm      *viewmodel.ViewModel[E]
	columns []column[E]
}

func (s *entityScreen[E]) Name() string { return s.name }

func (s *entityScreen[E]) Columns() []string {
	headers := make([]string, len(s.columns))
	for i, c := range s.columns {
		headers[i] = c.header
	}
	return headers
}

func (s *entityScreen[E]) Rows() [][]string {
	items := s.vm.Items()
	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(s.columns))
		for j, c := range s.columns {
			row[j] = c.value(item)
		}
		rows[i] = row
	}
	return rows
}

func (s *entityScreen[E]) FieldNames() []string                   { return s.vm.FieldNames() }
func (s *entityScreen[E]) Field(name string) string               { return s.vm.Field(name) }
func (s *entityScreen[E]) Status() string                         { return s.vm.Status() }
func (s *entityScreen[E]) StatusCell() *observable.Value[string]  { return s.vm.StatusCell() }
func (s *entityScreen[E]) HasSelection() bool                     { return s.vm.HasSelection() }
func (s *entityScreen[E]) Load()                                  { s.vm.Load() }
func (s *entityScreen[E]) Create()                                { s.vm.Create() }
func (s *entityScreen[E]) Update()                                { s.vm.Update() }
func (s *entityScreen[E]) Delete()                                { s.vm.Delete() }
func (s *entityScreen[E]) Deselect()                              { s.vm.Select(nil) }
func (s *entityScreen[E]) SetField(name, value string)            { s.vm.SetField(name, value) }

func (s *entityScreen[E]) SelectRow(row int) bool {
	items := s.vm.Items()
	if row < 0 || row >= len(items) {
		return false
	}
	s.vm.Select(items[row])
	return true
}

func NewClientsScreen(vm *viewmodel.ViewModel[apiprotocol.Client]) Screen {
	return &entityScreen[apiprotocol.Client]{
		name: "clients",
		vm:   vm,
		columns: []column[apiprotocol.Client]{
			{header: "ID", value: func(c *apiprotocol.Client) string { return fmt.Sprintf("%d", c.ID) }},
			{header: "NAME", value: func(c *apiprotocol.Client) string { return c.Name }},
			{header: "EMAIL", value: func(c *apiprotocol.Client) string { return c.Email }},
			{header: "PHONE", value: func(c *apiprotocol.Client) string { return deref(c.Phone) }},
		},
	}
}

func NewProductsScreen(vm *viewmodel.ViewModel[apiprotocol.Product]) Screen {
	return &entityScreen[apiprotocol.Product]{
		name: "products",
		vm:   vm,
		columns: []column[apiprotocol.Product]{
			{header: "ID", value: func(p *apiprotocol.Product) string { return fmt.Sprintf("%d", p.ID) }},
			{header: "NAME", value: func(p *apiprotocol.Product) string { return p.Name }},
			{header: "PRICE", value: func(p *apiprotocol.Product) string { return p.Price.String() }},
			{header: "STOCK", value: func(p *apiprotocol.Product) string { return fmt.Sprintf("%d", p.Stock) }},
		},
	}
}

func NewOrdersScreen(vm *viewmodel.ViewModel[apiprotocol.Order]) Screen {
	return &entityScreen[apiprotocol.Order]{
		name: "orders",
		vm:   vm,
		columns: []column[apiprotocol.Order]{
			{header: "ID", value: func(o *apiprotocol.Order) string { return fmt.Sprintf("%d", o.ID) }},
			{header: "NUMBER", value: func(o *apiprotocol.Order) string { return o.OrderNumber }},
			{header: "CLIENT", value: func(o *apiprotocol.Order) string { return fmt.Sprintf("%d", o.ClientID) }},
			{header: "STATUS", value: func(o *apiprotocol.Order) string { return o.OrderStatus }},
			{header: "TOTAL", value: func(o *apiprotocol.Order) string { return o.TotalAmount.String() }},
		},
	}
}

// itemsScreen binds the line-item view-model to one order id chosen when the
// screen was opened.
type itemsScreen struct {
	orderID int
	vm      *viewmodel.OrderProductsViewModel
}

func NewItemsScreen(vm *viewmodel.OrderProductsViewModel, orderID int) Screen {
	return &itemsScreen{
		orderID: orderID,
		vm:      vm,
	}
}

func (s *itemsScreen) Name() string { return fmt.Sprintf("items of order %d", s.orderID) }

func (s *itemsScreen) Columns() []string {
	return []string{"ID", "PRODUCT", "QTY", "UNIT PRICE", "LINE TOTAL"}
}

func (s *itemsScreen) Rows() [][]string {
	items := s.vm.Items()
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{
			fmt.Sprintf("%d", item.ID),
			fmt.Sprintf("%d", item.ProductID),
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.String(),
			item.LineTotal.String(),
		}
	}
	return rows
}

func (s *itemsScreen) FieldNames() []string                  { return s.vm.FieldNames() }
func (s *itemsScreen) Field(name string) string              { return s.vm.Field(name) }
func (s *itemsScreen) Status() string                        { return s.vm.Status() }
func (s *itemsScreen) StatusCell() *observable.Value[string] { return s.vm.StatusCell() }
func (s *itemsScreen) HasSelection() bool                    { return s.vm.HasSelection() }
func (s *itemsScreen) Load()                                 { s.vm.Load(s.orderID) }
func (s *itemsScreen) Create()                               { s.vm.Add(s.orderID) }
func (s *itemsScreen) Update()                               { s.vm.Update(s.orderID) }
func (s *itemsScreen) Delete()                               { s.vm.Remove(s.orderID) }
func (s *itemsScreen) Deselect()                             { s.vm.Select(nil) }
func (s *itemsScreen) SetField(name, value string)           { s.vm.SetField(name, value) }

func (s *itemsScreen) SelectRow(row int) bool {
	items := s.vm.Items()
	if row < 0 || row >= len(items) {
		return false
	}
	s.vm.Select(items[row])
	return true
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
