package backing

import "golang.org/x/sys/unix"

// Mmap acquires arenas from the OS as anonymous, private mmap regions,
// the same mechanism the buddy allocator this package's sibling is
// modeled on uses directly. The kernel hands back page-aligned memory
// only: unlike Heap, Mmap does not align a region to its own length.
type Mmap struct{}

// Map implements Source.
func (Mmap) Map(length int) ([]byte, error) {
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// Unmap implements Source.
func (Mmap) Unmap(region []byte) error {
	return unix.Munmap(region)
}
