// Package buddy implements a binary buddy memory allocator: a single
// power-of-two arena carved into aligned power-of-two blocks, satisfying
// allocations by splitting and reclaiming frees by coalescing with buddies.
//
// The allocator is single-threaded. A Pool handed to more than one
// goroutine must be externally serialized, or wrapped with buddysafe.Pool.
package buddy

import "github.com/danielmarsh/buddyalloc/src/backing"

// Compile-time constants bounding the orders a Pool can manage.
const (
	// DefaultK is the order used by Init when size is 0: a 1GiB arena.
	DefaultK uint = 30
	// MinK is the smallest order Init chooses for kvalM unless
	// WithMinOrder overrides it.
	MinK uint = 20
	// MaxK bounds the avail array; the largest usable order is MaxK-1,
	// so avail's MaxK slots index orders 0..kvalM directly.
	MaxK uint = 48
	// SmallestK is the smallest block order alloc will ever hand out,
	// large enough to hold the header.
	SmallestK uint = 6
)

type blockTag uint16

const (
	tagReserved blockTag = iota
	tagAvail
	_
	tagUnused
)

// header is the fixed record at the base of every block, whether free or
// reserved. It is never constructed directly from a payload pointer; see
// headerFromPayload and blockAt, which are the only places that turn an
// offset or a caller pointer into a *header.
type header struct {
	tag   blockTag
	order uint16
	next  *header
	prev  *header
}

// Pool tracks one managed arena: its backing memory and the free lists
// indexed by order. A zero Pool must be passed to Init before use.
type Pool struct {
	kvalM    uint
	minK     uint
	maxK     uint
	numBytes uintptr
	base     uintptr
	arena    []byte
	source   backing.Source
	avail    [MaxK]header
}
