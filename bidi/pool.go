package bidi

import (
	"context"
	"errors"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
)

// ErrArena is returned if no run arena can be provided for a paragraph.
var ErrArena = errors.New("bidi: cannot allocate run arena")

// Arenas are short-lived, but may grow large for long paragraphs. To avoid
// re-allocating them for every paragraph we pool them.
type arenaPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalArenaPool *arenaPool

func init() {
	globalArenaPool = &arenaPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newArena(64), nil
		})
	globalArenaPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalArenaPool.opool = pool.NewObjectPool(globalArenaPool.ctx, factory, config)
}

// borrowArena returns an empty arena. Clients must return it with
// releaseArena on every path.
func borrowArena() (*arena, error) {
	o, err := globalArenaPool.opool.BorrowObject(globalArenaPool.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArena, err)
	}
	a, ok := o.(*arena)
	if !ok {
		return nil, ErrArena
	}
	a.reset()
	return a, nil
}

// releaseArena clears an arena and puts it back into the pool. Arenas which
// grew very large are dropped, to not hold memory for rare long paragraphs.
func releaseArena(a *arena) {
	if a == nil {
		return
	}
	if cap(a.runs) > 1<<16 {
		_ = globalArenaPool.opool.InvalidateObject(globalArenaPool.ctx, a)
		return
	}
	a.reset()
	_ = globalArenaPool.opool.ReturnObject(globalArenaPool.ctx, a)
}
