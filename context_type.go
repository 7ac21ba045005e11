package wdfsdk

import (
	"fmt"
	"reflect"
	"sync"
)

// ContextTypeInfo is the descriptor record the framework reads when an object
// is created with a context type attached. Exactly one descriptor exists per
// declared Go type for the life of the process; its address is the type's
// identity, so two descriptors never compare equal even when every other
// field matches.
type ContextTypeInfo struct {
	// Size is the size of this descriptor record itself.
	Size uint32

	// ContextName is the human-readable type name.
	ContextName string

	// ContextSize is the payload size the framework reserves per object.
	ContextSize uintptr

	// EvtDriverGetUniqueContextType is reserved by the framework contract and
	// left nil by this SDK.
	EvtDriverGetUniqueContextType func() *ContextTypeInfo

	unique *ContextTypeInfo
}

// UniqueType returns the descriptor's identity pointer, the key the framework
// matches context storage against.
func (i *ContextTypeInfo) UniqueType() *ContextTypeInfo { return i.unique }

// ContextType gives typed access to the context storage that framework
// objects carry for payload type T. Obtain one per type via
// DeclareContextType, at package initialization.
type ContextType[T any] struct {
	info *ContextTypeInfo
}

var (
	contextTypesMu   sync.Mutex
	contextTypes     = make(map[reflect.Type]*ContextTypeInfo)
	contextTypeNames = make(map[string]reflect.Type)
)

// DeclareContextType registers T as a context type and returns its typed
// accessor. Call it once per type, from a package-level var initializer, so
// the descriptor exists before any object of that type. Declaration is pure
// data assembly and performs no framework calls.
//
// Declaring the same type twice, or reusing a name for a different type,
// panics: the descriptor's address is its process-wide identity and must be
// unique.
func DeclareContextType[T any](name string) *ContextType[T] {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if name == "" {
		name = rt.Name()
	}
	if name == "" {
		panic("wdfsdk: context type needs an explicit name")
	}

	contextTypesMu.Lock()
	defer contextTypesMu.Unlock()

	if _, dup := contextTypes[rt]; dup {
		panic(fmt.Sprintf("wdfsdk: context type already declared for %s", rt))
	}
	if prev, taken := contextTypeNames[name]; taken {
		panic(fmt.Sprintf("wdfsdk: context type name %q already declared for %s", name, prev))
	}

	info := &ContextTypeInfo{
		Size:        uint32(reflect.TypeOf(ContextTypeInfo{}).Size()),
		ContextName: name,
		ContextSize: rt.Size(),
	}
	info.unique = info

	contextTypes[rt] = info
	contextTypeNames[name] = rt

	return &ContextType[T]{info: info}
}

// Info returns the process-wide descriptor for T.
func (ct *ContextType[T]) Info() *ContextTypeInfo { return ct.info }

// Name returns the declared context type name.
func (ct *ContextType[T]) Name() string { return ct.info.ContextName }

// Attributes returns object attributes that tell the framework to reserve
// context storage for T on the object about to be created.
func (ct *ContextType[T]) Attributes() *ObjectAttributes {
	return &ObjectAttributes{ContextType: ct.info}
}
