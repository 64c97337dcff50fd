package buddy

import (
	"fmt"

	"github.com/danielmarsh/buddyalloc/src/backing"
)

// Option configures a Pool at Init time.
type Option struct{ apply func(*Pool) }

// WithSource selects the backing-memory source used to acquire and
// release the arena. The default is backing.Mmap{}.
func WithSource(s backing.Source) Option {
	return Option{func(p *Pool) { p.source = s }}
}

// WithMinOrder overrides the smallest order Init will pick for kvalM.
func WithMinOrder(k uint) Option {
	return Option{func(p *Pool) { p.minK = k }}
}

// WithMaxOrder overrides the order ceiling (exclusive) Init will clamp
// kvalM below.
func WithMaxOrder(k uint) Option {
	return Option{func(p *Pool) { p.maxK = k }}
}

// Init creates a pool managing a fresh arena of the smallest power-of-two
// size covering size bytes, clamped to [1<<MinK, 1<<(MaxK-1)]. size == 0
// selects DefaultK. On backing-acquisition failure the pool is left
// zeroed and the error wraps the underlying syscall failure; the spec
// considers this fatal for the pool.
func Init(pool *Pool, size uintptr, opts ...Option) error {
	cfg := Pool{minK: MinK, maxK: MaxK, source: backing.Mmap{}}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	var kval uint
	if size == 0 {
		kval = DefaultK
	} else {
		kval = OrderOf(size)
	}
	if kval < cfg.minK {
		kval = cfg.minK
	}
	if kval >= cfg.maxK {
		kval = cfg.maxK - 1
	}

	numBytes := uintptr(1) << kval
	arena, err := cfg.source.Map(int(numBytes))
	if err != nil {
		*pool = Pool{}
		return fmt.Errorf("buddy: acquire arena: %w", err)
	}

	// Make sure the pool struct is cleared out before repopulating it,
	// even on a reused value — a prior Init must not leave stale
	// sentinel links behind.
	*pool = Pool{minK: cfg.minK, maxK: cfg.maxK, source: cfg.source}
	pool.kvalM = kval
	pool.numBytes = numBytes
	pool.arena = arena
	pool.base = blockAtBaseAddr(arena)

	for i := uint(0); i <= kval; i++ {
		pool.avail[i].next = &pool.avail[i]
		pool.avail[i].prev = &pool.avail[i]
		pool.avail[i].order = uint16(i)
		pool.avail[i].tag = tagUnused
	}

	first := blockAt(pool, 0)
	first.tag = tagAvail
	first.order = uint16(kval)
	first.next = &pool.avail[kval]
	first.prev = &pool.avail[kval]
	pool.avail[kval].next = first
	pool.avail[kval].prev = first

	succeed()
	return nil
}

// Order returns the pool's arena order (kvalM): the arena is 1<<Order(pool)
// bytes.
func Order(pool *Pool) uint {
	return pool.kvalM
}

// Destroy releases the pool's arena back to its backing source and zeroes
// the pool struct so it may be reused with a fresh Init. Payload pointers
// handed out before Destroy are invalidated.
func Destroy(pool *Pool) error {
	if pool == nil || pool.base == 0 {
		return nil
	}
	if err := pool.source.Unmap(pool.arena); err != nil {
		return fmt.Errorf("buddy: release arena: %w", err)
	}
	*pool = Pool{}
	return nil
}
