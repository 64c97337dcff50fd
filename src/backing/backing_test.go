package backing

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src Source, length int) []byte {
	t.Helper()
	region, err := src.Map(length)
	require.NoError(t, err)
	require.Len(t, region, length)

	region[0] = 0xAA
	region[length-1] = 0xBB
	assert.Equal(t, byte(0xAA), region[0])
	assert.Equal(t, byte(0xBB), region[length-1])
	return region
}

func TestMmapSource(t *testing.T) {
	for order := 12; order <= 20; order++ {
		length := 1 << order
		region := roundTrip(t, Mmap{}, length)

		// The kernel only promises page alignment, not alignment to the
		// full mapping length; that stronger guarantee is Heap's job.
		addr := uintptr(unsafe.Pointer(&region[0]))
		assert.Zero(t, addr%4096, "mmap region not page-aligned")

		require.NoError(t, Mmap{}.Unmap(region))
	}
}

func TestHeapSource(t *testing.T) {
	for order := 12; order <= 20; order++ {
		length := 1 << order
		region := roundTrip(t, Heap{}, length)

		addr := uintptr(unsafe.Pointer(&region[0]))
		assert.Zero(t, addr%uintptr(length), "heap region not aligned to its own length")

		require.NoError(t, Heap{}.Unmap(region))
	}
}

func TestHeapSourceRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Heap{}.Map(100)
	assert.Error(t, err)
}
