package wdfsdk

// Thin pass-through wrappers over Invoke for the entry points this SDK
// exposes directly. Each one marshals its arguments in declared order and
// surfaces dispatcher errors unchanged.

// DriverCreate creates the framework driver object. attrs may be nil when no
// driver context is wanted. The callee's status is returned alongside the
// handle so callers can inspect informational statuses.
func (b *Binding) DriverCreate(driverObject ObjectHandle, registryPath string, attrs *ObjectAttributes, cfg *DriverConfig) (DriverHandle, NTStatus, error) {
	var driver DriverHandle
	status, err := b.Invoke(FnDriverCreate, driverObject, registryPath, attrs, cfg, &driver)
	if err != nil {
		return 0, status, err
	}
	if !status.IsSuccess() {
		return 0, status, &CallFailedError{Status: status}
	}
	return driver, status, nil
}

// DeviceCreate creates a device object from its init block, consuming the
// block on success. attrs normally carries the device context type.
func (b *Binding) DeviceCreate(init DeviceInitHandle, attrs *ObjectAttributes) (DeviceHandle, NTStatus, error) {
	var device DeviceHandle
	status, err := b.Invoke(FnDeviceCreate, init, attrs, &device)
	if err != nil {
		return 0, status, err
	}
	if !status.IsSuccess() {
		return 0, status, &CallFailedError{Status: status}
	}
	return device, status, nil
}

// DeviceInitSetPnpPowerEventCallbacks registers PnP/power callbacks on a
// device init block. Must be called before DeviceCreate for the same block.
func (b *Binding) DeviceInitSetPnpPowerEventCallbacks(init DeviceInitHandle, cbs *PnpPowerEventCallbacks) error {
	return b.Call(FnDeviceInitSetPnpPowerEventCallbacks, init, cbs)
}

// ObjectGetTypedContextWorker resolves the context storage an object carries
// for the given descriptor identity. The framework reports STATUS_NOT_FOUND
// when the object was not created with that context type.
func (b *Binding) ObjectGetTypedContextWorker(obj ObjectHandle, info *ContextTypeInfo) (*ContextSlot, error) {
	var slot *ContextSlot
	if err := b.Call(FnObjectGetTypedContextWorker, obj, info.UniqueType(), &slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// ObjectDelete deletes a framework object and everything parented to it.
// Context payloads still attached are discarded by the framework; the driver
// should Drop them first.
func (b *Binding) ObjectDelete(obj ObjectHandle) error {
	return b.Call(FnObjectDelete, obj)
}
