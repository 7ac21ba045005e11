package wdfsdk

// Handles are minted and owned by the framework. The SDK never allocates or
// frees them; it only passes them back into framework calls and reads the
// context storage associated with them. Zero is never a valid handle.

// GlobalsHandle is the process-wide context handle required as the first
// argument of every framework call. It is obtained once at driver attach time
// and is immutable for the process lifetime.
type GlobalsHandle uintptr

// ObjectHandle is an opaque reference to any framework-managed object.
type ObjectHandle uintptr

// DriverHandle references the framework driver object.
type DriverHandle uintptr

// DeviceHandle references a framework device object.
type DeviceHandle uintptr

// DeviceInitHandle references the framework's device initialization block,
// valid only until the device is created or the block is freed.
type DeviceInitHandle uintptr

// Object widens a driver handle for calls that take any framework object.
func (h DriverHandle) Object() ObjectHandle { return ObjectHandle(h) }

// Object widens a device handle for calls that take any framework object.
func (h DeviceHandle) Object() ObjectHandle { return ObjectHandle(h) }

// IsZero reports whether the handle is unset.
func (h ObjectHandle) IsZero() bool { return h == 0 }

// IsZero reports whether the handle is unset.
func (h GlobalsHandle) IsZero() bool { return h == 0 }
