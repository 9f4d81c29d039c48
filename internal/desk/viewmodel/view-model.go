// Package viewmodel implements the screen state shared by all entity
// screens: an authoritative list mirroring the backend, a single selection,
// editable form fields, and a status line, all as observable cells.
//
// A single writer discipline keeps the cells consistent: every mutation
// happens under the view-model's control lock, whether it comes from the
// frontend or from a completed network call. Network operations are
// fire-and-forget; they never return futures and never block the caller.
// Progress and outcome are observed through the status cell only.
package viewmodel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"orderdesk/pkg/logging"
	"orderdesk/pkg/observable"
)

const operationTimeout = 30 * time.Second

// Gateway is the backend access a view-model needs for one entity type.
type Gateway[E any] interface {
	List(ctx context.Context) ([]*E, error)
	Create(ctx context.Context, draft *E) (*E, error)
	Update(ctx context.Context, id int, draft *E) (*E, error)
	Delete(ctx context.Context, id int) error
}

type ViewModel[E any] struct {
	mux    sync.Mutex // control lock: single writer for all cells
	schema Schema[E]
	gw     Gateway[E]
	logger *logging.ZapLogger

	items        *observable.List[*E]
	selected     *observable.Value[*E]
	hasSelection *observable.Value[bool]
	status       *observable.Value[string]
	fields       map[string]*observable.Value[string]
	fieldOrder   []string
}

func New[E any](schema Schema[E], gw Gateway[E], logger *logging.ZapLogger) *ViewModel[E] {
	vm := &ViewModel[E]{
		schema:       schema,
		gw:           gw,
		logger:       logger,
		items:        observable.NewList[*E](),
		selected:     observable.NewValue[*E](nil),
		hasSelection: observable.NewValue(false),
		status:       observable.NewValue(""),
		fields:       make(map[string]*observable.Value[string]),
		fieldOrder:   make([]string, 0, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		vm.fields[f.Name] = observable.NewValue(f.Default)
		vm.fieldOrder = append(vm.fieldOrder, f.Name)
	}
	return vm
}

// Cells, for frontend binding.

func (vm *ViewModel[E]) ItemsCell() *observable.List[*E]           { return vm.items }
func (vm *ViewModel[E]) SelectedCell() *observable.Value[*E]       { return vm.selected }
func (vm *ViewModel[E]) HasSelectionCell() *observable.Value[bool] { return vm.hasSelection }
func (vm *ViewModel[E]) StatusCell() *observable.Value[string]     { return vm.status }

func (vm *ViewModel[E]) FieldCell(name string) *observable.Value[string] {
	return vm.fields[name]
}

// Snapshot accessors.

func (vm *ViewModel[E]) Items() []*E        { return vm.items.Snapshot() }
func (vm *ViewModel[E]) Selected() *E       { return vm.selected.Get() }
func (vm *ViewModel[E]) HasSelection() bool { return vm.hasSelection.Get() }
func (vm *ViewModel[E]) Status() string     { return vm.status.Get() }

func (vm *ViewModel[E]) FieldNames() []string {
	names := make([]string, len(vm.fieldOrder))
	copy(names, vm.fieldOrder)
	return names
}

func (vm *ViewModel[E]) Field(name string) string {
	cell, ok := vm.fields[name]
	if !ok {
		return ""
	}
	return cell.Get()
}

// Select makes e the current selection and copies its fields into the form,
// discarding any unsaved edits. A nil e clears the selection and resets the
// form to defaults.
func (vm *ViewModel[E]) Select(e *E) {
	vm.mux.Lock()
	defer vm.mux.Unlock()
	vm.applySelection(e)
}

// SetField stores an edit and, for validated fields, refreshes the status
// line with the first problem or clears it. Validation never blocks edits.
func (vm *ViewModel[E]) SetField(name, value string) {
	vm.mux.Lock()
	defer vm.mux.Unlock()

	cell, ok := vm.fields[name]
	if !ok {
		return
	}
	cell.Set(value)
	for _, f := range vm.schema.Fields {
		if f.Name == name && f.Validate != nil {
			vm.status.Set(f.Validate(value))
			return
		}
	}
}

// Load replaces items wholesale with the backend's list. Overlapping loads
// are not serialized: whichever response lands last wins.
func (vm *ViewModel[E]) Load() {
	vm.mux.Lock()
	vm.status.Set("Loading " + vm.schema.Plural + "...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		list, err := vm.gw.List(ctx)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "load failed", zap.String("entity", vm.schema.Noun), zap.Error(err))
			vm.status.Set("Load failed: " + err.Error())
			return
		}
		vm.items.Replace(list)
		vm.status.Set(fmt.Sprintf("Loaded %d %s", len(list), vm.schema.Plural))
	}()
}

// Create validates the form synchronously; the first failing reason goes to
// status and no network call is made. On success the server-returned entity
// is prepended to items and selected.
func (vm *ViewModel[E]) Create() {
	vm.mux.Lock()
	draft, reason := vm.schema.Collect(vm.Field)
	if reason != "" {
		vm.status.Set(reason)
		vm.mux.Unlock()
		return
	}
	vm.status.Set("Creating " + vm.schema.Noun + "...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		created, err := vm.gw.Create(ctx, draft)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "create failed", zap.String("entity", vm.schema.Noun), zap.Error(err))
			vm.status.Set("Create failed: " + err.Error())
			return
		}
		vm.items.Prepend(created)
		vm.applySelection(created)
		vm.status.Set(fmt.Sprintf("Created %s ID %d", vm.schema.Noun, vm.schema.ID(created)))
	}()
}

// Update sends the form for the selected entity. The server-returned record
// replaces the previously selected object at its index, found by identity;
// if that object is gone from items the replacement is skipped, but the
// updated record is still selected.
func (vm *ViewModel[E]) Update() {
	vm.mux.Lock()
	sel := vm.selected.Get()
	if sel == nil {
		vm.status.Set("No " + vm.schema.Noun + " selected")
		vm.mux.Unlock()
		return
	}
	draft, reason := vm.schema.Collect(vm.Field)
	if reason != "" {
		vm.status.Set(reason)
		vm.mux.Unlock()
		return
	}
	id := vm.schema.ID(sel)
	vm.status.Set("Updating " + vm.schema.Noun + "...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		updated, err := vm.gw.Update(ctx, id, draft)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "update failed", zap.String("entity", vm.schema.Noun), zap.Error(err))
			vm.status.Set("Update failed: " + err.Error())
			return
		}
		if idx := vm.items.IndexFunc(func(e *E) bool { return e == sel }); idx >= 0 {
			vm.items.Set(idx, updated)
		}
		vm.applySelection(updated)
		vm.status.Set(fmt.Sprintf("Updated %s ID %d", vm.schema.Noun, vm.schema.ID(updated)))
	}()
}

// Delete removes the selected entity. The caller is expected to have
// confirmed the action already; this is not the place to ask.
func (vm *ViewModel[E]) Delete() {
	vm.mux.Lock()
	sel := vm.selected.Get()
	if sel == nil {
		vm.status.Set("No " + vm.schema.Noun + " selected")
		vm.mux.Unlock()
		return
	}
	id := vm.schema.ID(sel)
	vm.status.Set("Deleting " + vm.schema.Noun + "...")
	vm.mux.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		err := vm.gw.Delete(ctx, id)

		vm.mux.Lock()
		defer vm.mux.Unlock()
		if err != nil {
			vm.logger.DebugCtx(ctx, "delete failed", zap.String("entity", vm.schema.Noun), zap.Error(err))
			vm.status.Set("Delete failed: " + err.Error())
			return
		}
		if idx := vm.items.IndexFunc(func(e *E) bool { return e == sel }); idx >= 0 {
			vm.items.RemoveAt(idx)
		}
		vm.applySelection(nil)
		vm.status.Set(fmt.Sprintf("Deleted %s ID %d", vm.schema.Noun, id))
	}()
}

// applySelection must run under the control lock.
func (vm *ViewModel[E]) applySelection(e *E) {
	vm.selected.Set(e)
	vm.hasSelection.Set(e != nil)
	for _, f := range vm.schema.Fields {
		if e == nil {
			vm.fields[f.Name].Set(f.Default)
		} else {
			vm.fields[f.Name].Set(f.Present(e))
		}
	}
}
