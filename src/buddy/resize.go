package buddy

import "unsafe"

// Realloc resizes a live allocation to nbytes. It reduces to Alloc when
// payload is nil and to Free (returning nil) when nbytes is 0. A shrink
// splits the block in place and keeps the payload pointer stable. A grow
// first tries to coalesce with right-hand free buddies only — absorbing
// a left-hand buddy would move the payload, which would break the
// pointer-stability contract realloc callers rely on — and falls back to
// allocate-copy-free when that stalls short of the target order. The
// fallback returns the new payload pointer on success; the original
// block is left untouched and OUT_OF_MEMORY is reported only if the
// fallback allocation itself fails.
func Realloc(pool *Pool, payload unsafe.Pointer, nbytes uintptr) (unsafe.Pointer, error) {
	if payload == nil {
		return Alloc(pool, nbytes)
	}
	if nbytes == 0 {
		Free(pool, payload)
		return nil, nil
	}
	if pool == nil {
		return nil, fail(EInvalidArgument, ErrInvalidArgument)
	}

	block := headerFromPayload(payload)
	cur := uint(block.order)
	want := orderForPayload(nbytes)

	if cur == want {
		succeed()
		return payload, nil
	}
	if cur > want {
		shrink(pool, block, want)
		succeed()
		return payload, nil
	}
	return grow(pool, block, want)
}

// shrink splits block down from its current order to want, publishing
// each newly created right half as free, the same way Alloc's R3/R4
// split a larger found block down to the requested order.
func shrink(pool *Pool, block *header, want uint) {
	cur := uint(block.order)
	for cur > want {
		cur--
		right := blockAt(pool, offsetOf(pool, block)+(uintptr(1)<<cur))
		right.order = uint16(cur)
		right.tag = tagAvail
		insertBlock(&pool.avail[cur], right)
	}
	block.order = uint16(cur)
}

// grow attempts in-place growth by absorbing right-hand free buddies
// until block reaches order want; if that stalls short of want, it falls
// back to allocate-copy-free.
func grow(pool *Pool, block *header, want uint) (unsafe.Pointer, error) {
	orig := uint(block.order)
	cur := orig
	for cur < want && cur < pool.kvalM {
		buddy := buddyOf(pool, block)
		if buddy.tag != tagAvail || buddy.order != uint16(cur) {
			break
		}
		if uintptr(unsafe.Pointer(buddy)) < uintptr(unsafe.Pointer(block)) {
			break
		}
		unlink(buddy)
		cur++
		block.order = uint16(cur)
	}

	if cur == want {
		succeed()
		return payloadOf(block), nil
	}

	oldPayload := payloadOf(block)
	oldCap := payloadCapacity(uint(block.order))
	newPayload, err := Alloc(pool, (uintptr(1)<<want)-headerSize)
	if err != nil {
		// Undo any partial growth from the loop above so the original
		// block is left at its original order, with every absorbed buddy
		// published as free again.
		shrink(pool, block, orig)
		return nil, fail(EOutOfMemory, ErrOutOfMemory)
	}

	copy(unsafe.Slice((*byte)(newPayload), oldCap), unsafe.Slice((*byte)(oldPayload), oldCap))
	Free(pool, oldPayload)
	succeed()
	return newPayload, nil
}
