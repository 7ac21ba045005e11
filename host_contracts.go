package wdfsdk

// Host-side contract notes:
//
// A production host (the process that actually loads the native framework) is
// responsible for constructing the FuncTable and the GlobalsHandle and handing
// both to the driver's attach routine, which builds the Binding:
//
// - The function table is read from the loaded framework module exactly once,
//   at load time. Its recorded length is authoritative: the host must never
//   pad it with slots the loaded build does not populate, because Available()
//   treats in-range non-nil slots as callable without further checks.
//
// - The globals handle is minted once per process and stays valid until
//   process exit. The host must pass the same handle to every binding it
//   creates.
//
// - For each entry point it bridges, the host supplies a RawFunc that
//   marshals the argument list (in declared order, globals first) into the
//   native calling convention, and writes out-values through the pointer
//   arguments before returning the native status unchanged.
//
// - Context storage: when an object is created with ObjectAttributes carrying
//   a ContextType, the host allocates one ContextSlot for that object keyed
//   by the descriptor's UniqueType() pointer, and serves it from its
//   WdfObjectGetTypedContextWorker bridge. The slot must live exactly as long
//   as the object.
//
// SimHost in this package is the reference implementation of this contract
// and the behavior tests are written against it.
//
// This file is documentation-only (no runtime code required).
