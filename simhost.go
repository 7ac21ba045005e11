package wdfsdk

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// SimHost is an in-memory framework host: it mints handles, owns the object
// registry and context storage, and populates a function table that routes
// back into itself. Useful for local driver development and tests without a
// real framework host. It implements only the entry points this SDK wraps;
// every other table slot stays empty, which exercises the same
// FunctionNotAvailable path a real older framework build would.
type SimHost struct {
	logger  Logger
	version FrameworkVersion
	globals GlobalsHandle
	table   *FuncTable

	mu        sync.RWMutex
	objects   map[ObjectHandle]*simObject
	driver    *simObject
	driverCfg DriverConfig

	nextHandle atomic.Uintptr

	callsMu sync.Mutex
	calls   map[FuncIndex]int
}

// SimHostConfig holds configuration for the simulated host.
type SimHostConfig struct {
	// Version is the simulated framework build, "major.minor".
	// Default: "2.33".
	Version string `json:"version,omitempty"`

	// PopulatedSlots truncates the function table to the first N slots,
	// simulating an older framework build (0 = populate everything).
	PopulatedSlots int `json:"populated_slots,omitempty"`

	// Logger for host-side events. Optional.
	Logger Logger `json:"-"`
}

// SimHostConfigFromJSON decodes a SimHostConfig from an opaque settings blob.
func SimHostConfigFromJSON(cfg JSONConfig) (SimHostConfig, error) {
	var out SimHostConfig
	if cfg.Empty() {
		return out, nil
	}
	if err := cfg.Decode(&out); err != nil {
		return SimHostConfig{}, fmt.Errorf("sim host config: %w", err)
	}
	return out, nil
}

type simObjectKind string

const (
	simObjectDriver     simObjectKind = "driver"
	simObjectDevice     simObjectKind = "device"
	simObjectDeviceInit simObjectKind = "device-init"
)

type simObject struct {
	handle   ObjectHandle
	kind     simObjectKind
	parent   ObjectHandle
	contexts map[*ContextTypeInfo]*ContextSlot
	pnp      *PnpPowerEventCallbacks

	// device records, on an init block, the device created from it.
	device DeviceHandle
}

// NewSimHost creates a simulated framework host.
func NewSimHost(cfg SimHostConfig) (*SimHost, error) {
	versionStr := cfg.Version
	if versionStr == "" {
		versionStr = "2.33"
	}
	version, err := ParseFrameworkVersion(versionStr)
	if err != nil {
		return nil, err
	}

	h := &SimHost{
		logger:  cfg.Logger,
		version: version,
		objects: make(map[ObjectHandle]*simObject),
		calls:   make(map[FuncIndex]int),
	}
	h.globals = GlobalsHandle(h.nextHandle.Add(1))

	slots := make([]RawFunc, funcIndexCount)
	slots[FnDriverCreate] = h.counted(FnDriverCreate, h.driverCreate)
	slots[FnDeviceCreate] = h.counted(FnDeviceCreate, h.deviceCreate)
	slots[FnDeviceInitSetPnpPowerEventCallbacks] = h.counted(FnDeviceInitSetPnpPowerEventCallbacks, h.deviceInitSetPnpPowerEventCallbacks)
	slots[FnObjectGetTypedContextWorker] = h.counted(FnObjectGetTypedContextWorker, h.objectGetTypedContextWorker)
	slots[FnObjectDelete] = h.counted(FnObjectDelete, h.objectDelete)

	if cfg.PopulatedSlots > 0 && cfg.PopulatedSlots < len(slots) {
		slots = slots[:cfg.PopulatedSlots]
	}
	h.table = NewFuncTable(version, slots)

	return h, nil
}

// Globals returns the process globals handle this host minted.
func (h *SimHost) Globals() GlobalsHandle { return h.globals }

// Table returns the host's populated function table.
func (h *SimHost) Table() *FuncTable { return h.table }

// NewBinding returns a dispatcher wired to this host.
func (h *SimHost) NewBinding() (*Binding, error) {
	return NewBinding(BindingConfig{
		Table:   h.table,
		Globals: h.globals,
		Logger:  h.logger,
	})
}

// Calls returns how many times the given entry point was dispatched into this
// host.
func (h *SimHost) Calls(idx FuncIndex) int {
	h.callsMu.Lock()
	defer h.callsMu.Unlock()
	return h.calls[idx]
}

// ObjectCount returns the number of live framework objects.
func (h *SimHost) ObjectCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// ObjectExists reports whether the handle references a live object.
func (h *SimHost) ObjectExists(obj ObjectHandle) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.objects[obj]
	return ok
}

func (h *SimHost) counted(idx FuncIndex, fn RawFunc) RawFunc {
	return func(globals GlobalsHandle, args ...any) NTStatus {
		h.callsMu.Lock()
		h.calls[idx]++
		h.callsMu.Unlock()
		return fn(globals, args...)
	}
}

func (h *SimHost) newObject(kind simObjectKind, parent ObjectHandle, ctxType *ContextTypeInfo) *simObject {
	obj := &simObject{
		handle:   ObjectHandle(h.nextHandle.Add(1)),
		kind:     kind,
		parent:   parent,
		contexts: make(map[*ContextTypeInfo]*ContextSlot),
	}
	if ctxType != nil {
		obj.contexts[ctxType.UniqueType()] = NewContextSlot()
	}
	h.objects[obj.handle] = obj
	return obj
}

func (h *SimHost) checkGlobals(globals GlobalsHandle, fn string) bool {
	if globals == h.globals {
		return true
	}
	if h.logger != nil {
		h.logger.Error("wrong globals handle", "function", fn, "got", uintptr(globals))
	}
	return false
}

// driverCreate: (driverObject ObjectHandle, registryPath string,
// attrs *ObjectAttributes, cfg *DriverConfig, out *DriverHandle)
func (h *SimHost) driverCreate(globals GlobalsHandle, args ...any) NTStatus {
	if !h.checkGlobals(globals, "WdfDriverCreate") || len(args) != 5 {
		return StatusInvalidParameter
	}
	_, ok0 := args[0].(ObjectHandle)
	registryPath, ok1 := args[1].(string)
	attrs, ok2 := args[2].(*ObjectAttributes)
	cfg, ok3 := args[3].(*DriverConfig)
	out, ok4 := args[4].(*DriverHandle)
	if !ok0 || !ok1 || !ok2 || !ok3 || !ok4 || cfg == nil || out == nil {
		return StatusInvalidParameter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.driver != nil {
		return StatusInvalidDeviceState
	}

	var ctxType *ContextTypeInfo
	if attrs != nil {
		ctxType = attrs.ContextType
	}
	drv := h.newObject(simObjectDriver, 0, ctxType)
	h.driver = drv
	h.driverCfg = *cfg
	*out = DriverHandle(drv.handle)

	if h.logger != nil {
		h.logger.Debug("driver created",
			"handle", uintptr(drv.handle), "registry_path", registryPath)
	}
	return StatusSuccess
}

// deviceCreate: (init DeviceInitHandle, attrs *ObjectAttributes,
// out *DeviceHandle). Consumes the init block on success.
func (h *SimHost) deviceCreate(globals GlobalsHandle, args ...any) NTStatus {
	if !h.checkGlobals(globals, "WdfDeviceCreate") || len(args) != 3 {
		return StatusInvalidParameter
	}
	initHandle, ok0 := args[0].(DeviceInitHandle)
	attrs, ok1 := args[1].(*ObjectAttributes)
	out, ok2 := args[2].(*DeviceHandle)
	if !ok0 || !ok1 || !ok2 || out == nil {
		return StatusInvalidParameter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	init, ok := h.objects[ObjectHandle(initHandle)]
	if !ok || init.kind != simObjectDeviceInit {
		return StatusInvalidParameter
	}

	var ctxType *ContextTypeInfo
	parent := init.parent
	if attrs != nil {
		ctxType = attrs.ContextType
		if !attrs.ParentObject.IsZero() {
			parent = attrs.ParentObject
		}
	}

	dev := h.newObject(simObjectDevice, parent, ctxType)
	dev.pnp = init.pnp
	init.device = DeviceHandle(dev.handle)
	delete(h.objects, init.handle)
	*out = DeviceHandle(dev.handle)

	if h.logger != nil {
		h.logger.Debug("device created", "handle", uintptr(dev.handle))
	}
	return StatusSuccess
}

// deviceInitSetPnpPowerEventCallbacks: (init DeviceInitHandle,
// cbs *PnpPowerEventCallbacks). No native result.
func (h *SimHost) deviceInitSetPnpPowerEventCallbacks(globals GlobalsHandle, args ...any) NTStatus {
	if !h.checkGlobals(globals, "WdfDeviceInitSetPnpPowerEventCallbacks") || len(args) != 2 {
		return StatusInvalidParameter
	}
	initHandle, ok0 := args[0].(DeviceInitHandle)
	cbs, ok1 := args[1].(*PnpPowerEventCallbacks)
	if !ok0 || !ok1 || cbs == nil {
		return StatusInvalidParameter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	init, ok := h.objects[ObjectHandle(initHandle)]
	if !ok || init.kind != simObjectDeviceInit {
		return StatusInvalidParameter
	}
	cp := *cbs
	init.pnp = &cp
	return StatusSuccess
}

// objectGetTypedContextWorker: (obj ObjectHandle, info *ContextTypeInfo,
// out **ContextSlot). Matches context storage by descriptor identity.
func (h *SimHost) objectGetTypedContextWorker(globals GlobalsHandle, args ...any) NTStatus {
	if !h.checkGlobals(globals, "WdfObjectGetTypedContextWorker") || len(args) != 3 {
		return StatusInvalidParameter
	}
	objHandle, ok0 := args[0].(ObjectHandle)
	info, ok1 := args[1].(*ContextTypeInfo)
	out, ok2 := args[2].(**ContextSlot)
	if !ok0 || !ok1 || !ok2 || info == nil || out == nil {
		return StatusInvalidParameter
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, ok := h.objects[objHandle]
	if !ok {
		return StatusNotFound
	}
	slot, ok := obj.contexts[info.UniqueType()]
	if !ok {
		return StatusNotFound
	}
	*out = slot
	return StatusSuccess
}

// objectDelete: (obj ObjectHandle). Deletes the object and everything
// parented to it.
func (h *SimHost) objectDelete(globals GlobalsHandle, args ...any) NTStatus {
	if !h.checkGlobals(globals, "WdfObjectDelete") || len(args) != 1 {
		return StatusInvalidParameter
	}
	objHandle, ok := args[0].(ObjectHandle)
	if !ok {
		return StatusInvalidParameter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.objects[objHandle]; !ok {
		return StatusNotFound
	}
	h.deleteTree(objHandle)
	return StatusSuccess
}

// deleteTree removes obj and recursively everything parented to it.
// Caller holds h.mu.
func (h *SimHost) deleteTree(objHandle ObjectHandle) {
	obj := h.objects[objHandle]
	delete(h.objects, objHandle)
	if obj != nil && h.driver == obj {
		h.driver = nil
		h.driverCfg = DriverConfig{}
	}
	for handle, o := range h.objects {
		if o.parent == objHandle {
			h.deleteTree(handle)
		}
	}
}

// AddDevice simulates device arrival: it mints a device init block and
// invokes the driver's EvtDriverDeviceAdd, returning the device the callback
// created.
func (h *SimHost) AddDevice() (DeviceHandle, error) {
	h.mu.Lock()
	drv := h.driver
	cb := h.driverCfg.EvtDriverDeviceAdd
	if drv == nil {
		h.mu.Unlock()
		return 0, fmt.Errorf("no driver has been created")
	}
	if cb == nil {
		h.mu.Unlock()
		return 0, fmt.Errorf("driver registered no EvtDriverDeviceAdd callback")
	}
	init := h.newObject(simObjectDeviceInit, drv.handle, nil)
	h.mu.Unlock()

	status := cb(DriverHandle(drv.handle), DeviceInitHandle(init.handle))

	h.mu.Lock()
	device := init.device
	if !status.IsSuccess() || device == 0 {
		// unconsumed init block is discarded
		delete(h.objects, init.handle)
	}
	h.mu.Unlock()

	if !status.IsSuccess() {
		return 0, &CallFailedError{Status: status}
	}
	if device == 0 {
		return 0, fmt.Errorf("EvtDriverDeviceAdd succeeded without creating a device")
	}
	return device, nil
}

// StartDevice runs the device's start sequence: EvtDevicePrepareHardware,
// then EvtDeviceD0Entry. Callbacks are invoked in order, serialized by the
// host; the first failure stops the sequence.
func (h *SimHost) StartDevice(device DeviceHandle) error {
	pnp, err := h.devicePnp(device)
	if err != nil {
		return err
	}
	if pnp.EvtDevicePrepareHardware != nil {
		if status := pnp.EvtDevicePrepareHardware(device); !status.IsSuccess() {
			return &CallFailedError{Status: status}
		}
	}
	if pnp.EvtDeviceD0Entry != nil {
		if status := pnp.EvtDeviceD0Entry(device, PowerDeviceD3); !status.IsSuccess() {
			return &CallFailedError{Status: status}
		}
	}
	return nil
}

// StopDevice runs the device's stop sequence: EvtDeviceD0Exit, then
// EvtDeviceReleaseHardware.
func (h *SimHost) StopDevice(device DeviceHandle) error {
	pnp, err := h.devicePnp(device)
	if err != nil {
		return err
	}
	if pnp.EvtDeviceD0Exit != nil {
		if status := pnp.EvtDeviceD0Exit(device, PowerDeviceD3); !status.IsSuccess() {
			return &CallFailedError{Status: status}
		}
	}
	if pnp.EvtDeviceReleaseHardware != nil {
		if status := pnp.EvtDeviceReleaseHardware(device); !status.IsSuccess() {
			return &CallFailedError{Status: status}
		}
	}
	return nil
}

func (h *SimHost) devicePnp(device DeviceHandle) (PnpPowerEventCallbacks, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	obj, ok := h.objects[ObjectHandle(device)]
	if !ok || obj.kind != simObjectDevice {
		return PnpPowerEventCallbacks{}, fmt.Errorf("not a device handle: %d", uintptr(device))
	}
	if obj.pnp == nil {
		return PnpPowerEventCallbacks{}, nil
	}
	return *obj.pnp, nil
}
