// Package buddysafe wraps buddy.Pool with the mutual exclusion the core
// deliberately does not provide (see the buddy package doc). It is a
// thin forwarding layer: every exported method takes the lock, calls the
// matching buddy.Pool operation, and releases it — nothing more.
package buddysafe

import (
	"sync"
	"unsafe"

	"github.com/danielmarsh/buddyalloc/src/buddy"
)

// Pool is a buddy.Pool safe for concurrent use by multiple goroutines.
type Pool struct {
	mu   sync.Mutex
	pool buddy.Pool
}

// Init creates the underlying pool. See buddy.Init.
func (p *Pool) Init(size uintptr, opts ...buddy.Option) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return buddy.Init(&p.pool, size, opts...)
}

// Destroy releases the underlying pool. See buddy.Destroy.
func (p *Pool) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return buddy.Destroy(&p.pool)
}

// Alloc allocates nbytes of payload. See buddy.Alloc.
func (p *Pool) Alloc(nbytes uintptr) (unsafe.Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return buddy.Alloc(&p.pool, nbytes)
}

// Free releases a payload previously returned by Alloc or Realloc. See
// buddy.Free.
func (p *Pool) Free(payload unsafe.Pointer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	buddy.Free(&p.pool, payload)
}

// Realloc resizes a live allocation. See buddy.Realloc.
func (p *Pool) Realloc(payload unsafe.Pointer, nbytes uintptr) (unsafe.Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return buddy.Realloc(&p.pool, payload, nbytes)
}
