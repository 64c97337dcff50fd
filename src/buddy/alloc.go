package buddy

import "unsafe"

// Alloc satisfies a request for nbytes of payload, splitting the smallest
// sufficient free block down to size. It always keeps the left half of
// any split reserved and publishes the right half, which makes the
// addresses handed back for a given sequence of calls deterministic.
func Alloc(pool *Pool, nbytes uintptr) (unsafe.Pointer, error) {
	if pool == nil || nbytes == 0 {
		return nil, fail(EInvalidArgument, ErrInvalidArgument)
	}

	k := orderForPayload(nbytes)
	if k > pool.kvalM {
		return nil, fail(EOutOfMemory, ErrOutOfMemory)
	}

	// R1: find the smallest order j >= k with a non-empty free list.
	j := k
	for j <= pool.kvalM && pool.avail[j].next == &pool.avail[j] {
		j++
	}
	if j > pool.kvalM {
		return nil, fail(EOutOfMemory, ErrOutOfMemory)
	}

	// R2: detach the head of avail[j].
	block := removeFirst(&pool.avail[j])

	// R3/R4: split down to the requested order, keeping the left half
	// and publishing each right half at its own order.
	for j > k {
		j--
		right := blockAt(pool, offsetOf(pool, block)+(uintptr(1)<<j))
		right.order = uint16(j)
		right.tag = tagAvail
		insertBlock(&pool.avail[j], right)
	}

	block.order = uint16(k)
	block.tag = tagReserved
	succeed()
	return payloadOf(block), nil
}
