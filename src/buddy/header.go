package buddy

import "unsafe"

// headerSize is H from the spec: the number of bytes every block, free or
// reserved, spends on its header before the payload begins.
const headerSize = unsafe.Sizeof(header{})

// blockAt returns the header living at the given byte offset from the
// pool's arena base. It is the single choke point through which an
// in-arena offset becomes a *header; nothing else in this package casts
// arena bytes directly.
func blockAt(p *Pool, offset uintptr) *header {
	return (*header)(unsafe.Pointer(p.base + offset))
}

// offsetOf returns b's byte offset from the pool's arena base.
func offsetOf(p *Pool, b *header) uintptr {
	return uintptr(unsafe.Pointer(b)) - p.base
}

// headerFromPayload recovers the header of the block backing a payload
// pointer previously returned by Alloc or Realloc.
func headerFromPayload(payload unsafe.Pointer) *header {
	return (*header)(unsafe.Pointer(uintptr(payload) - headerSize))
}

// payloadOf returns the caller-visible pointer for block b.
func payloadOf(b *header) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(b)) + headerSize)
}

// payloadCapacity returns the usable bytes of a block of the given order.
func payloadCapacity(order uint) uintptr {
	return (uintptr(1) << order) - headerSize
}

// blockAtBaseAddr returns the address of arena's first byte. The arena
// must be non-empty; backing sources never hand back a zero-length slice.
func blockAtBaseAddr(arena []byte) uintptr {
	return uintptr(unsafe.Pointer(&arena[0]))
}
