package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listLen(head *header) int {
	n := 0
	for b := head.next; b != head; b = b.next {
		n++
	}
	return n
}

func TestFreeNilPayloadIsInvalid(t *testing.T) {
	var pool Pool
	require.NoError(t, Init(&pool, uintptr(1)<<MinK))
	defer Destroy(&pool)

	Free(&pool, nil)
	assert.Equal(t, EInvalidArgument, Errno())
	checkPoolFull(t, &pool)
}

// TestFreeCoalescesToWholeArena is spec scenario S3: allocate two
// same-size blocks, free the first (its buddy is still reserved, so no
// merge happens yet), then free the second, which cascades all the way
// back up to a single block at kvalM.
func TestFreeCoalescesToWholeArena(t *testing.T) {
	var pool Pool
	initSmall(t, &pool, 1<<12)
	defer Destroy(&pool)

	k := orderForPayload(8)
	a, err := Alloc(&pool, 8)
	require.NoError(t, err)
	b, err := Alloc(&pool, 8)
	require.NoError(t, err)

	Free(&pool, a)
	assert.Equal(t, 1, listLen(&pool.avail[k]))

	Free(&pool, b)
	checkPoolFull(t, &pool)
}

func TestFreeStopsAtReservedBuddy(t *testing.T) {
	var pool Pool
	initSmall(t, &pool, 1<<12)
	defer Destroy(&pool)

	a, err := Alloc(&pool, 8)
	require.NoError(t, err)
	_, err = Alloc(&pool, 8)
	require.NoError(t, err)

	Free(&pool, a)
	hdr := headerFromPayload(a)
	assert.Equal(t, tagAvail, hdr.tag)
	buddy := buddyOf(&pool, hdr)
	assert.Equal(t, tagReserved, buddy.tag)
}

func TestFreeStopsAtPartiallySplitBuddy(t *testing.T) {
	var pool Pool
	initSmall(t, &pool, 1<<12)
	defer Destroy(&pool)

	// a is the whole left half of the arena, order 11. Splitting off its
	// buddy's order-10 halves and reserving both means the buddy's base
	// address (offset 2048) will end up free at order 10, never 11.
	a, err := Alloc(&pool, (uintptr(1)<<11)-headerSize)
	require.NoError(t, err)
	x, err := Alloc(&pool, (uintptr(1)<<10)-headerSize) // offset 2048, order 10
	require.NoError(t, err)
	_, err = Alloc(&pool, (uintptr(1)<<10)-headerSize) // offset 3072, order 10
	require.NoError(t, err)

	Free(&pool, x) // buddy (offset 3072) still reserved: x stays free at order 10
	xHdr := headerFromPayload(x)
	require.Equal(t, tagAvail, xHdr.tag)
	require.Equal(t, uint16(10), xHdr.order)

	Free(&pool, a)
	aHdr := headerFromPayload(a)
	assert.Equal(t, uint16(11), aHdr.order, "a's buddy is free but at a different order, so no merge")
	assert.Equal(t, tagAvail, aHdr.tag)
}
