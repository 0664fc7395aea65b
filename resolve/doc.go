// Package resolve is the resolution runtime shared by the container and by
// compiled containers.
//
// A Table owns the cache slots of one container. Table.Resolve returns the
// cached value of a name or runs its builder once, detecting reentrant
// requests through the resolution stack carried in the context. With thread
// safety enabled, first resolutions are serialized by a per-entry lock with a
// bounded fallback to a container-wide lock. Table.ResolveAsync dispatches
// resolutions to a bounded worker pool and returns a Future.
package resolve
