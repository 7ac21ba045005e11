package wdfsdk

import (
	"fmt"
	"sync"
)

// Binding is the dispatcher: it resolves entry points against one loaded
// function table and performs the call with the process globals handle
// prepended. A Binding is immutable after construction and safe for
// concurrent use.
type Binding struct {
	table    *FuncTable
	globals  GlobalsHandle
	settings JSONConfig
	logger   Logger
}

// BindingConfig holds everything the host's attach routine supplies.
type BindingConfig struct {
	// Table is the loaded framework function table. Required.
	Table *FuncTable

	// Globals is the process-wide context handle. Required.
	Globals GlobalsHandle

	// Settings is an opaque host-provided settings blob for the driver
	// (typically read from the driver's registry path by the host). Optional.
	Settings JSONConfig

	// Logger receives debug traces for dispatch misses. Optional.
	Logger Logger
}

// NewBinding creates a dispatcher over the supplied table and globals handle.
func NewBinding(cfg BindingConfig) (*Binding, error) {
	if cfg.Table == nil {
		return nil, fmt.Errorf("function table is required")
	}
	if cfg.Globals.IsZero() {
		return nil, fmt.Errorf("globals handle is required")
	}
	return &Binding{
		table:    cfg.Table,
		globals:  cfg.Globals,
		settings: cfg.Settings,
		logger:   cfg.Logger,
	}, nil
}

// Table returns the function table this binding dispatches against.
func (b *Binding) Table() *FuncTable { return b.table }

// Globals returns the process globals handle threaded into every call.
func (b *Binding) Globals() GlobalsHandle { return b.globals }

// Settings returns the host-provided driver settings blob.
func (b *Binding) Settings() JSONConfig { return b.settings }

// Invoke resolves the entry point and performs the call, one shot, with the
// globals handle as first argument followed by args in order. The callee's
// status is returned verbatim; err is non-nil only when the entry point is
// absent from the loaded build, in which case the table is never read. Invoke
// blocks for as long as the callee blocks; it adds no timeout, retry, or
// cancellation of its own.
func (b *Binding) Invoke(idx FuncIndex, args ...any) (NTStatus, error) {
	if !b.table.Available(idx) {
		if b.logger != nil {
			b.logger.Debug("entry point not available",
				"function", idx.String(),
				"framework_version", b.table.Version().String())
		}
		return StatusNotFound, &FunctionNotAvailableError{Name: idx.String()}
	}
	fn := b.table.slot(idx)
	return fn(b.globals, args...), nil
}

// Call is Invoke for callers that only need the error taxonomy: a failure
// status is folded into CallFailedError, success into nil.
func (b *Binding) Call(idx FuncIndex, args ...any) error {
	status, err := b.Invoke(idx, args...)
	if err != nil {
		return err
	}
	if !status.IsSuccess() {
		return &CallFailedError{Status: status}
	}
	return nil
}

var (
	defaultMu      sync.Mutex
	defaultBinding *Binding
)

// Bind installs the process-wide default binding. It may be called exactly
// once, from the driver's attach routine, before any other goroutine uses
// Default.
func Bind(b *Binding) error {
	if b == nil {
		return fmt.Errorf("cannot bind a nil binding")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBinding != nil {
		return fmt.Errorf("default binding is already set")
	}
	defaultBinding = b
	return nil
}

// Default returns the process-wide binding installed by Bind, or nil when the
// driver has not attached yet.
func Default() *Binding {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultBinding
}
