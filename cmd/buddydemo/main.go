// Command buddydemo drives a buddy.Pool through a scripted sequence of
// alloc/free/realloc calls and reports occupancy. It exists purely as
// scaffolding around the core — the spec this allocator implements
// explicitly keeps CLI drivers out of the core itself.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/danielmarsh/buddyalloc/src/buddy"
)

func main() {
	size := flag.Uint64("size", 0, "arena size in bytes (0 picks the default order)")
	script := flag.String("script", "", "comma-separated tokens: a<bytes>, f<handle>, r<handle>:<bytes>")
	flag.Parse()

	var pool buddy.Pool
	if err := buddy.Init(&pool, uintptr(*size)); err != nil {
		fmt.Fprintln(os.Stderr, "buddydemo: init:", err)
		os.Exit(1)
	}
	defer buddy.Destroy(&pool)

	handles := map[int]unsafe.Pointer{}
	nextHandle := 0

	for _, tok := range splitScript(*script) {
		if tok == "" {
			continue
		}
		if err := runToken(&pool, tok, handles, &nextHandle); err != nil {
			fmt.Fprintf(os.Stderr, "buddydemo: %s: %v\n", tok, err)
		}
	}

	fmt.Printf("arena bytes: %d\n", uintptr(1)<<buddy.Order(&pool))
	fmt.Printf("live allocations: %d\n", len(handles))
}

func splitScript(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func runToken(pool *buddy.Pool, tok string, handles map[int]unsafe.Pointer, nextHandle *int) error {
	switch tok[0] {
	case 'a':
		n, err := strconv.ParseUint(tok[1:], 10, 64)
		if err != nil {
			return err
		}
		payload, err := buddy.Alloc(pool, uintptr(n))
		if err != nil {
			return err
		}
		handles[*nextHandle] = payload
		fmt.Printf("alloc %d -> handle %d\n", n, *nextHandle)
		*nextHandle++
		return nil

	case 'f':
		h, err := strconv.Atoi(tok[1:])
		if err != nil {
			return err
		}
		payload, ok := handles[h]
		if !ok {
			return fmt.Errorf("unknown handle %d", h)
		}
		buddy.Free(pool, payload)
		delete(handles, h)
		fmt.Printf("free handle %d\n", h)
		return nil

	case 'r':
		parts := strings.SplitN(tok[1:], ":", 2)
		if len(parts) != 2 {
			return errors.New("realloc token must be r<handle>:<bytes>")
		}
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return err
		}
		payload, ok := handles[h]
		if !ok {
			return fmt.Errorf("unknown handle %d", h)
		}
		resized, err := buddy.Realloc(pool, payload, uintptr(n))
		if err != nil {
			return err
		}
		handles[h] = resized
		fmt.Printf("realloc handle %d -> %d bytes\n", h, n)
		return nil

	default:
		return fmt.Errorf("unrecognized token %q", tok)
	}
}
