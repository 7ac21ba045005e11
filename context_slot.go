package wdfsdk

// ContextSlot is the per-object context storage the framework owns. The host
// allocates one slot per (object, context type) pair at object creation; the
// SDK locates it through WdfObjectGetTypedContextWorker and never frees it.
// The payload inside is the only mutable shared state in this SDK, guarded by
// the slot's reader/writer lock.

import "sync"

type ContextSlot struct {
	mu      sync.RWMutex
	payload any // *T once initialized, nil when empty
}

// NewContextSlot returns an empty slot. Hosts call this when creating an
// object whose attributes carry a context type.
func NewContextSlot() *ContextSlot {
	return &ContextSlot{}
}

// SharedGuard grants read access to a slot's payload. Any number of shared
// guards may be live at once; Release each one when done. The payload must
// not be mutated through a shared guard.
type SharedGuard[T any] struct {
	slot     *ContextSlot
	v        *T
	released bool
}

// Value returns the guarded payload. Valid until Release.
func (g *SharedGuard[T]) Value() *T { return g.v }

// Release gives up the shared access. Safe to call more than once.
func (g *SharedGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.slot.mu.RUnlock()
}

// ExclusiveGuard grants read-write access to a slot's payload, excluding all
// other shared and exclusive access for its lifetime.
type ExclusiveGuard[T any] struct {
	slot     *ContextSlot
	v        *T
	released bool
}

// Value returns the guarded payload for reading and writing. Valid until
// Release.
func (g *ExclusiveGuard[T]) Value() *T { return g.v }

// Release gives up the exclusive access. Safe to call more than once.
func (g *ExclusiveGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.slot.mu.Unlock()
}

// resolve locates obj's storage for this context type through the dispatcher.
func (ct *ContextType[T]) resolve(b *Binding, obj ObjectHandle) (*ContextSlot, error) {
	return b.ObjectGetTypedContextWorker(obj, ct.info)
}

// Init places value into obj's context storage, unconditionally. A payload
// already present is overwritten silently, without any teardown of the old
// value; callers that need single initialization must enforce it themselves,
// normally by initializing from the same creation path that made the object.
// Init must happen-before any Get on the same object.
func (ct *ContextType[T]) Init(b *Binding, obj ObjectHandle, value T) error {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return err
	}
	slot.mu.Lock()
	slot.payload = &value
	slot.mu.Unlock()
	return nil
}

// Drop clears obj's context storage, releasing the payload. Call it exactly
// once, after every outstanding guard is released and before any further use;
// the framework's object-lifecycle serialization is the usual way to order
// this. The SDK cannot observe the object's real destruction, so nothing
// calls Drop automatically. The slot itself stays addressable afterwards.
func (ct *ContextType[T]) Drop(b *Binding, obj ObjectHandle) error {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return err
	}
	slot.mu.Lock()
	slot.payload = nil
	slot.mu.Unlock()
	return nil
}

// Get returns shared access to obj's payload, blocking while an exclusive
// guard is held. It reports false when the storage cannot be resolved, the
// slot is empty, or the slot holds a different type; missing context is an
// expected outcome, not an error.
func (ct *ContextType[T]) Get(b *Binding, obj ObjectHandle) (*SharedGuard[T], bool) {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return nil, false
	}
	slot.mu.RLock()
	v, ok := slot.payload.(*T)
	if !ok {
		slot.mu.RUnlock()
		return nil, false
	}
	return &SharedGuard[T]{slot: slot, v: v}, true
}

// TryGet is Get without blocking: it additionally reports false when an
// exclusive guard currently holds the slot.
func (ct *ContextType[T]) TryGet(b *Binding, obj ObjectHandle) (*SharedGuard[T], bool) {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return nil, false
	}
	if !slot.mu.TryRLock() {
		return nil, false
	}
	v, ok := slot.payload.(*T)
	if !ok {
		slot.mu.RUnlock()
		return nil, false
	}
	return &SharedGuard[T]{slot: slot, v: v}, true
}

// GetMut returns exclusive access to obj's payload, blocking until every
// other guard is released. It reports false under the same conditions as Get.
func (ct *ContextType[T]) GetMut(b *Binding, obj ObjectHandle) (*ExclusiveGuard[T], bool) {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return nil, false
	}
	slot.mu.Lock()
	v, ok := slot.payload.(*T)
	if !ok {
		slot.mu.Unlock()
		return nil, false
	}
	return &ExclusiveGuard[T]{slot: slot, v: v}, true
}

// TryGetMut is GetMut without blocking: it additionally reports false when
// any guard, shared or exclusive, currently holds the slot.
func (ct *ContextType[T]) TryGetMut(b *Binding, obj ObjectHandle) (*ExclusiveGuard[T], bool) {
	slot, err := ct.resolve(b, obj)
	if err != nil {
		return nil, false
	}
	if !slot.mu.TryLock() {
		return nil, false
	}
	v, ok := slot.payload.(*T)
	if !ok {
		slot.mu.Unlock()
		return nil, false
	}
	return &ExclusiveGuard[T]{slot: slot, v: v}, true
}
