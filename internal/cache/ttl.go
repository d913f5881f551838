package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	DefaultSweepInterval = 60 * time.Second
	defaultCapacity      = 1000
	defaultTTL           = 10 * time.Minute
)

type Options struct {
	DefaultTTL    time.Duration
	Capacity      int
	SweepInterval time.Duration
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
	elem      *list.Element
}

// TTL is an in-memory key/value store with per-entry expiry. When full, the
// oldest inserted entry is evicted regardless of how recently it was read.
// Overwriting a key keeps its original insertion position.
type TTL[V any] struct {
	mu         sync.Mutex
	items      map[string]*entry[V]
	order      *list.List
	capacity   int
	defaultTTL time.Duration
	interval   time.Duration
	now        func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewTTL[V any](opts Options) *TTL[V] {
	if opts.Capacity <= 0 {
		opts.Capacity = defaultCapacity
	}
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = defaultTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	return &TTL[V]{
		items:      make(map[string]*entry[V], opts.Capacity),
		order:      list.New(),
		capacity:   opts.Capacity,
		defaultTTL: opts.DefaultTTL,
		interval:   opts.SweepInterval,
		now:        time.Now,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Get returns the value for key when present and not expired. Expired entries
// are removed on read.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key, e)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A ttl <= 0 uses the cache default.
func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		return
	}

	for len(c.items) >= c.capacity {
		front := c.order.Front()
		if front == nil {
			break
		}
		oldest := front.Value.(string)
		c.removeLocked(oldest, c.items[oldest])
	}

	e := &entry[V]{value: value, expiresAt: expiresAt}
	e.elem = c.order.PushBack(key)
	c.items[key] = e
}

func (c *TTL[V]) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeLocked(key, e)
	}
}

func (c *TTL[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *TTL[V]) Sweep() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		key := el.Value.(string)
		if e, ok := c.items[key]; ok && !now.Before(e.expiresAt) {
			c.removeLocked(key, e)
			removed++
		}
		el = next
	}
	return removed
}

// Start launches the background sweep. It is a no-op after the first call.
func (c *TTL[V]) Start() {
	if c == nil {
		return
	}
	c.startOnce.Do(func() {
		go c.sweepLoop()
	})
}

// Close stops the background sweep and waits for it to exit.
func (c *TTL[V]) Close() {
	if c == nil {
		return
	}
	started := true
	c.startOnce.Do(func() { started = false })
	c.stopOnce.Do(func() { close(c.stop) })
	if started {
		<-c.done
	}
}

func (c *TTL[V]) sweepLoop() {
	defer close(c.done)
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.Sweep()
		}
	}
}

func (c *TTL[V]) removeLocked(key string, e *entry[V]) {
	if e != nil && e.elem != nil {
		c.order.Remove(e.elem)
	}
	delete(c.items, key)
}
