package wdfsdk

// Driver-side event callbacks and the fixed-field records the framework reads
// when a driver or device object is created. Field layout follows the
// framework's expected structures; the framework serializes construction and
// destruction callbacks, so none of these are re-entered concurrently.

// PowerState is the framework device power state passed to D0 transitions.
type PowerState int

const (
	PowerDeviceUnspecified PowerState = iota
	PowerDeviceD0
	PowerDeviceD1
	PowerDeviceD2
	PowerDeviceD3
	PowerDeviceMaximum
)

// EvtDriverDeviceAdd is invoked by the framework for each device arrival. The
// driver creates its device object from the init block here.
type EvtDriverDeviceAdd func(driver DriverHandle, init DeviceInitHandle) NTStatus

// EvtDevicePrepareHardware is invoked after resources are assigned, before
// the device enters D0.
type EvtDevicePrepareHardware func(device DeviceHandle) NTStatus

// EvtDeviceReleaseHardware is invoked after the device has left D0 for the
// last time.
type EvtDeviceReleaseHardware func(device DeviceHandle) NTStatus

// EvtDeviceD0Entry is invoked when the device enters its working state.
type EvtDeviceD0Entry func(device DeviceHandle, previous PowerState) NTStatus

// EvtDeviceD0Exit is invoked when the device leaves its working state.
type EvtDeviceD0Exit func(device DeviceHandle, target PowerState) NTStatus

// DriverInitFlags adjust framework behavior at driver creation.
type DriverInitFlags uint32

const (
	DriverInitNonPnp             DriverInitFlags = 0x00000002
	DriverInitNoDispatchOverride DriverInitFlags = 0x00000004
)

// DriverConfig is the driver creation record read by WdfDriverCreate.
type DriverConfig struct {
	EvtDriverDeviceAdd EvtDriverDeviceAdd
	InitFlags          DriverInitFlags
	PoolTag            uint32
}

// PnpPowerEventCallbacks is the PnP/power callback record registered on a
// device init block before device creation. Nil members are simply not
// invoked.
type PnpPowerEventCallbacks struct {
	EvtDevicePrepareHardware EvtDevicePrepareHardware
	EvtDeviceReleaseHardware EvtDeviceReleaseHardware
	EvtDeviceD0Entry         EvtDeviceD0Entry
	EvtDeviceD0Exit          EvtDeviceD0Exit
}

// ObjectAttributes describes an object about to be created. ContextType, when
// set, tells the framework to size and tag the object's context storage for
// that type; the slot starts uninitialized.
type ObjectAttributes struct {
	ContextType  *ContextTypeInfo
	ParentObject ObjectHandle
}
