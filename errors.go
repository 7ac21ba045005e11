package wdfsdk

import (
	"errors"
	"fmt"
)

// NTStatus is the framework's native status code. The severity lives in the
// top two bits; success and informational severities count as success,
// matching the framework's own success test.
type NTStatus uint32

const (
	StatusSuccess               NTStatus = 0x00000000
	StatusUnsuccessful          NTStatus = 0xC0000001
	StatusNotImplemented        NTStatus = 0xC0000002
	StatusInvalidParameter      NTStatus = 0xC000000D
	StatusInsufficientResources NTStatus = 0xC000009A
	StatusInvalidDeviceState    NTStatus = 0xC0000184
	StatusNotFound              NTStatus = 0xC0000225
)

// IsSuccess reports whether the status carries success or informational
// severity.
func (s NTStatus) IsSuccess() bool {
	return s>>30 <= 1
}

func (s NTStatus) String() string {
	switch s {
	case StatusSuccess:
		return "STATUS_SUCCESS"
	case StatusUnsuccessful:
		return "STATUS_UNSUCCESSFUL"
	case StatusNotImplemented:
		return "STATUS_NOT_IMPLEMENTED"
	case StatusInvalidParameter:
		return "STATUS_INVALID_PARAMETER"
	case StatusInsufficientResources:
		return "STATUS_INSUFFICIENT_RESOURCES"
	case StatusInvalidDeviceState:
		return "STATUS_INVALID_DEVICE_STATE"
	case StatusNotFound:
		return "STATUS_NOT_FOUND"
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

// FunctionNotAvailableError means the requested entry point is absent from the
// loaded framework build. Recoverable; the caller decides on a fallback.
type FunctionNotAvailableError struct {
	Name string
}

func (e *FunctionNotAvailableError) Error() string {
	return e.Name + " is not available"
}

// CallFailedError means the entry point executed but reported failure. The
// status carries the native meaning and is surfaced unchanged.
type CallFailedError struct {
	Status NTStatus
}

func (e *CallFailedError) Error() string {
	return fmt.Sprintf("framework call failed: %s", e.Status)
}

// IsFunctionNotAvailable reports whether err (or anything it wraps) is a
// FunctionNotAvailableError.
func IsFunctionNotAvailable(err error) bool {
	var fna *FunctionNotAvailableError
	return errors.As(err, &fna)
}

// IsCallFailed reports whether err (or anything it wraps) is a CallFailedError.
func IsCallFailed(err error) bool {
	var cf *CallFailedError
	return errors.As(err, &cf)
}

// StatusFromError converts an SDK error back into the framework's status
// representation, so a failure surfaced here is indistinguishable from a
// native-originated one. A nil error maps to STATUS_SUCCESS.
func StatusFromError(err error) NTStatus {
	if err == nil {
		return StatusSuccess
	}
	var cf *CallFailedError
	if errors.As(err, &cf) {
		return cf.Status
	}
	var fna *FunctionNotAvailableError
	if errors.As(err, &fna) {
		return StatusNotFound
	}
	return StatusUnsuccessful
}
