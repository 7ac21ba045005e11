package wdfsdk

import "fmt"

// FuncIndex identifies one framework entry point by its position in the
// function table. Indices are assigned at build time and are only meaningful
// against the table of the same ABI build; never compare them across builds.
type FuncIndex int

const (
	FnDriverCreate FuncIndex = iota
	FnDriverRetrieveVersionString
	FnDeviceCreate
	FnDeviceInitFree
	FnDeviceInitSetPnpPowerEventCallbacks
	FnDeviceInitSetPowerPolicyEventCallbacks
	FnObjectGetTypedContextWorker
	FnObjectAllocateContext
	FnObjectDelete
	FnObjectReference
	FnObjectDereference

	funcIndexCount // keep last
)

var funcNames = [...]string{
	FnDriverCreate:                            "WdfDriverCreate",
	FnDriverRetrieveVersionString:             "WdfDriverRetrieveVersionString",
	FnDeviceCreate:                            "WdfDeviceCreate",
	FnDeviceInitFree:                          "WdfDeviceInitFree",
	FnDeviceInitSetPnpPowerEventCallbacks:     "WdfDeviceInitSetPnpPowerEventCallbacks",
	FnDeviceInitSetPowerPolicyEventCallbacks:  "WdfDeviceInitSetPowerPolicyEventCallbacks",
	FnObjectGetTypedContextWorker:             "WdfObjectGetTypedContextWorker",
	FnObjectAllocateContext:                   "WdfObjectAllocateContext",
	FnObjectDelete:                            "WdfObjectDelete",
	FnObjectReference:                         "WdfObjectReference",
	FnObjectDereference:                       "WdfObjectDereference",
}

// FuncIndexCount returns the number of entry points known to this SDK build.
// A loaded table may be shorter (older framework) or longer (newer framework).
func FuncIndexCount() int { return int(funcIndexCount) }

// Valid reports whether the index names an entry point known to this build.
func (i FuncIndex) Valid() bool {
	return i >= 0 && i < funcIndexCount
}

// String returns the entry point name, e.g. "WdfDeviceCreate".
func (i FuncIndex) String() string {
	if i.Valid() {
		return funcNames[i]
	}
	return fmt.Sprintf("WdfFunction(%d)", int(i))
}

// FrameworkVersion identifies the loaded framework build.
type FrameworkVersion struct {
	Major uint32
	Minor uint32
}

func (v FrameworkVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is the same or a newer build than o.
func (v FrameworkVersion) AtLeast(o FrameworkVersion) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

// RawFunc is one function-table slot. The dispatcher prepends the process
// globals handle; everything after that is the entry point's own parameter
// list, in declared order. Out-values are written through pointer arguments
// owned by the caller, and the slot reports completion via NTStatus (entry
// points with no native result return STATUS_SUCCESS).
type RawFunc func(globals GlobalsHandle, args ...any) NTStatus

// FuncTable is the framework's entry point table as loaded for one framework
// build. It is immutable after construction and safe to share across
// goroutines without locking. Slots may be nil: an older framework build
// populates fewer entries than this SDK knows about.
type FuncTable struct {
	version FrameworkVersion
	slots   []RawFunc
}

// NewFuncTable builds a table for the given framework build. The slot slice is
// copied; later mutation of the caller's slice does not affect the table.
func NewFuncTable(version FrameworkVersion, slots []RawFunc) *FuncTable {
	s := make([]RawFunc, len(slots))
	copy(s, slots)
	return &FuncTable{version: version, slots: s}
}

// Version returns the framework build this table was loaded from.
func (t *FuncTable) Version() FrameworkVersion { return t.version }

// Len returns the number of slots the loaded build populates (including
// interior nil slots).
func (t *FuncTable) Len() int { return len(t.slots) }

// Available reports whether the entry point can be called against this table.
// It must be consulted before any slot read; an out-of-range index is never
// dereferenced.
func (t *FuncTable) Available(idx FuncIndex) bool {
	return t != nil && idx >= 0 && int(idx) < len(t.slots) && t.slots[idx] != nil
}

// slot returns the function for idx. Callers must have checked Available.
func (t *FuncTable) slot(idx FuncIndex) RawFunc {
	return t.slots[idx]
}
