package buddy

import "unsafe"

// Free returns a block previously handed back by Alloc or Realloc,
// coalescing it with its buddy up to the arena order wherever possible.
// payload == nil is reported as INVALID_ARGUMENT and is otherwise a
// no-op. Freeing anything else that is not a live payload (double free,
// a pointer not obtained from this pool, use-after-free) is undefined
// behavior the core does not detect, per the spec's error taxonomy.
func Free(pool *Pool, payload unsafe.Pointer) {
	if pool == nil || payload == nil {
		fail(EInvalidArgument, ErrInvalidArgument)
		return
	}

	block := headerFromPayload(payload)
	block = coalesce(pool, block)
	block.tag = tagAvail
	insertBlock(&pool.avail[block.order], block)
	succeed()
}

// coalesce repeatedly merges block with its buddy while the buddy is
// free and at the same order, returning the final (possibly merged)
// block. It does not publish the result onto a free list; callers do
// that once, after deciding the final tag.
func coalesce(pool *Pool, block *header) *header {
	for uint(block.order) < pool.kvalM {
		buddy := buddyOf(pool, block)
		if buddy.tag == tagReserved {
			break
		}
		if buddy.tag == tagAvail && buddy.order != block.order {
			break
		}
		unlink(buddy)
		if uintptr(unsafe.Pointer(buddy)) < uintptr(unsafe.Pointer(block)) {
			block = buddy
		}
		block.order++
	}
	return block
}
