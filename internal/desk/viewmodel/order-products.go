package viewmodel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/pkg/logging"
	"orderdesk/pkg/observable"
)

// OrderProductsGateway is the backend access for line items nested under an
// order.
type OrderProductsGateway interface {
	List(ctx context.Context, orderID int) ([]*apiprotocol.OrderProduct, error)
	Add(ctx context.Context, orderID int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error)
	Update(ctx context.Context, orderID, itemID int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error)
	Delete(ctx context.Context, orderID, itemID int) error
}

// OrderProductsViewModel is the line-item specialization of the entity
// screen pattern: every operation is scoped to the order id the caller
// passes in, and the view-model never changes that context on its own.
// Line totals are always taken from the server, never computed here.
type OrderProductsViewModel struct {
	mux    sync.Mutex
	gw     OrderProductsGateway
	logger *logging.ZapLogger

	items        *observable.List[*apiprotocol.OrderProduct]
	selected     *observable.Value[*apiprotocol.OrderProduct]
	hasSelection *observable.Value[bool]
	status       *observable.Value[string]
	fields       map[string]*observable.Value[string]
	fieldOrder   []string
}

var orderProductFieldDefaults = []struct {
	name     string
	def      string
	validate func(string) string
}{
	{name: "order_id", def: "0"},
	{name: "product_id", def: "0", validate: validateOptionalID("Product ID")},
	{name: "quantity", def: "1", validate: validateCount("Quantity")},
	{name: "unit_price", def: "0", validate: validateAmount("Unit price")},
	{name: "line_total", def: "0"},
}

func NewOrderProductsViewModel(gw OrderProductsGateway, logger *logging.ZapLogger) *OrderProductsViewModel {
	vm := &OrderProductsViewModel{
		gw:           gw,
		logger:       logger,
		items:        observable.NewList[*apiprotocol.OrderProduct](),
		selected:     observable.NewValue[*apiprotocol.OrderProduct](nil),
		hasSelection: observable.NewValue(false),
		status:       observable.NewValue(""),
		fields:       make(map[string]*observable.Value[string]),
	}
	for _, f := range orderProductFieldDefaults {
		vm.fields[f.name] = observable.NewValue(f.def)
		vm.fieldOrder = append(vm.fieldOrder, f.name)
	}
	return vm
}

func (vm *OrderProductsViewModel) ItemsCell() *observable.List[*apiprotocol.OrderProduct] {
	return vm.items
}

func (vm *OrderProductsViewModel) SelectedCell() *observable.Value[*apiprotocol.OrderProduct] {
	return vm.selected
}

func (vm *OrderProductsViewModel) HasSelectionCell() *observable.Value[bool] {
	return vm.hasSelection
}

func (vm *OrderProductsViewModel) StatusCell() *observable.Value[string] {
	return vm.status
}

func (vm *OrderProductsViewModel) FieldCell(name string) *observable.Value[string] {
	return vm.fields[name]
}

func (vm *OrderProductsViewModel) Items() []*apiprotocol.OrderProduct { return vm.items.Snapshot() }
func (vm *OrderProductsViewModel) Selected() *apiprotocol.OrderProduct {
	return vm.selected.Get()
}
func (vm *OrderProductsViewModel) HasSelection() bool { return vm.hasSelection.Get() }
func (vm *OrderProductsViewModel) Status() string     { return vm.status.Get() }

func (vm *OrderProductsViewModel) FieldNames() []string {
	names := make([]string, len(vm.fieldOrder))
	copy(names, vm.fieldOrder)
	return names
}

func (vm *OrderProductsViewModel) Field(name string) string {
	cell, ok := vm.fields[name]
	if !ok {
		return ""
	}
	return cell.Get()
}

func (vm *OrderProductsViewModel) Select(item *apiprotocol.OrderProduct) {
	vm.mux.Lock()
	defer vm.mux.Unlock()
	vm.applySelection(item)
}

func (vm *OrderProductsViewModel) SetField(name, value string) {
	vm.mux.Lock()
	defer vm.mux.Unlock()

	cell, ok := vm.fields[name]
	if !ok {
		return
	}
	cell.Set(value)
	for _, f := range orderProductFieldDefaults {
		if f.name == name && f.validate != nil {
			vm.status.Set(f.validate(value))
			return
		}
	}
}

// Load replaces items with the line items of orderID.
func (vm *OrderProductsViewModel) Load(orderID int) {
	vm.mux.Lock()
	vm.status.Set(fmt.Sprintf("Loading items for order %d...", orderID))
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		list, err := vm.gw.List(ctx, orderID)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "load failed", zap.Int("order_id", orderID), zap.Error(err))
			vm.status.Set("Load failed: " + err.Error())
			return
		}
		vm.items.Replace(list)
		vm.status.Set(fmt.Sprintf("Loaded %d items", len(list)))
	}()
}

// Add validates the form and appends the server-returned line item.
func (vm *OrderProductsViewModel) Add(orderID int) {
	vm.mux.Lock()
	draft, reason := vm.collectItem(orderID)
	if reason != "" {
		vm.status.Set(reason)
		vm.mux.Unlock()
		return
	}
	vm.status.Set("Adding product to order...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		created, err := vm.gw.Add(ctx, orderID, draft)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "add failed", zap.Int("order_id", orderID), zap.Error(err))
			vm.status.Set("Add failed: " + err.Error())
			return
		}
		vm.items.Append(created)
		vm.applySelection(created)
		vm.status.Set(fmt.Sprintf("Added product ID %d to order %d", created.ProductID, orderID))
	}()
}

func (vm *OrderProductsViewModel) Update(orderID int) {
	vm.mux.Lock()
	sel := vm.selected.Get()
	if sel == nil {
		vm.status.Set("No item selected")
		vm.mux.Unlock()
		return
	}
	draft, reason := vm.collectItem(orderID)
	if reason != "" {
		vm.status.Set(reason)
		vm.mux.Unlock()
		return
	}
	itemID := sel.ID
	vm.status.Set("Updating product in order...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		updated, err := vm.gw.Update(ctx, orderID, itemID, draft)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "update failed", zap.Int("order_id", orderID), zap.Error(err))
			vm.status.Set("Update failed: " + err.Error())
			return
		}
		if idx := vm.items.IndexFunc(func(e *apiprotocol.OrderProduct) bool { return e == sel }); idx >= 0 {
			vm.items.Set(idx, updated)
		}
		vm.applySelection(updated)
		vm.status.Set(fmt.Sprintf("Updated item ID %d", updated.ID))
	}()
}

func (vm *OrderProductsViewModel) Remove(orderID int) {
	vm.mux.Lock()
	sel := vm.selected.Get()
	if sel == nil {
		vm.status.Set("No item selected")
		vm.mux.Unlock()
		return
	}
	itemID := sel.ID
	vm.status.Set("Removing product from order...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		err := vm.gw.Delete(ctx, orderID, itemID)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "remove failed", zap.Int("order_id", orderID), zap.Error(err))
			vm.status.Set("Remove failed: " + err.Error())
			return
		}
		if idx := vm.items.IndexFunc(func(e *apiprotocol.OrderProduct) bool { return e == sel }); idx >= 0 {
			vm.items.RemoveAt(idx)
		}
		vm.applySelection(nil)
		vm.status.Set(fmt.Sprintf("Removed item ID %d", itemID))
	}()
}

// collectItem must run under the control lock.
func (vm *OrderProductsViewModel) collectItem(orderID int) (*apiprotocol.OrderProduct, string) {
	productID, err := strconv.Atoi(strings.TrimSpace(vm.Field("product_id")))
	if err != nil || productID <= 0 {
		return nil, "Valid product ID required"
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(vm.Field("quantity")))
	if err != nil || quantity <= 0 {
		return nil, "Quantity must be positive"
	}
	unitPrice, reason := parseAmount(vm.Field("unit_price"), "Unit price")
	if reason != "" {
		return nil, reason
	}
	return &apiprotocol.OrderProduct{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: decimal.Zero,
	}, ""
}

// applySelection must run under the control lock.
func (vm *OrderProductsViewModel) applySelection(item *apiprotocol.OrderProduct) {
	vm.selected.Set(item)
	vm.hasSelection.Set(item != nil)
	if item == nil {
		for _, f := range orderProductFieldDefaults {
			vm.fields[f.name].Set(f.def)
		}
		return
	}
	vm.fields["order_id"].Set(strconv.Itoa(item.OrderID))
	vm.fields["product_id"].Set(strconv.Itoa(item.ProductID))
	vm.fields["quantity"].Set(strconv.Itoa(item.Quantity))
	vm.fields["unit_price"].Set(item.UnitPrice.String())
	vm.fields["line_total"].Set(item.LineTotal.String())
}
