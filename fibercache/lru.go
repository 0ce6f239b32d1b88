package fibercache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/idxgo/resource"
	"golang.org/x/sync/singleflight"
)

// LRU implements Cache with a byte-capacity LRU.
type LRU struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[Key]*list.Element
	evictList *list.List
	rc        *resource.Controller

	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   Key
	value []byte
}

// NewLRU creates an LRU cache with the given capacity in bytes.
// If rc is provided, admission draws from its memory budget.
func NewLRU(capacity int64, rc *resource.Controller) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns the span for req, reading it through on a miss. Concurrent
// misses for one key share a single underlying read.
func (c *LRU) Get(ctx context.Context, req Request) (Span, error) {
	key := req.Key()

	if b, ok := c.lookup(key); ok {
		c.hits.Add(1)

		return Span{b: b}, nil
	}

	c.misses.Add(1)

	v, err, _ := c.group.Do(flightKey(key), func() (any, error) {
		// A concurrent winner may have inserted while this call waited.
		if b, ok := c.lookup(key); ok {
			return b, nil
		}

		b, err := fetch(ctx, req)
		if err != nil {
			return nil, err
		}

		c.insert(key, b)

		return b, nil
	})
	if err != nil {
		return Span{}, err
	}

	return Span{b: v.([]byte)}, nil
}

// Put inserts a copy of raw keyed by (path, offset, len(raw)).
func (c *LRU) Put(_ context.Context, path string, offset int64, raw []byte) Span {
	b := make([]byte, len(raw))
	copy(b, raw)

	c.insert(Key{Path: path, Offset: offset, Length: int64(len(raw))}, b)

	return Span{b: b}
}

// Invalidate removes entries matching the predicate.
func (c *LRU) Invalidate(predicate func(Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// removeElement mutates the list, so collect first.
	var toRemove []*list.Element

	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}

	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Stats returns hit and miss counts.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current size of the cache in bytes.
func (c *LRU) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// Close releases the cache's memory reservation.
func (c *LRU) Close() error {
	c.Invalidate(func(Key) bool { return true })

	return nil
}

func (c *LRU) lookup(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)

		return ent.Value.(*entry).value, true
	}

	return nil, false
}

// insert adds a span, evicting from the tail as needed. Spans larger than
// the capacity, or denied by the resource controller, are simply not
// cached; the caller still gets its bytes.
func (c *LRU) insert(key Key, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	itemSize := int64(len(b))

	if ent, ok := c.items[key]; ok {
		// Same key, possibly re-fetched bytes. Keep sizes honest.
		c.evictList.MoveToFront(ent)

		oldSize := int64(len(ent.Value.(*entry).value))
		if c.rc != nil && itemSize > oldSize {
			if !c.rc.TryAcquireMemory(itemSize - oldSize) {
				return
			}
		}

		if c.rc != nil && itemSize < oldSize {
			c.rc.ReleaseMemory(oldSize - itemSize)
		}

		c.size += itemSize - oldSize
		ent.Value.(*entry).value = b
		c.evict()

		return
	}

	if itemSize > c.capacity {
		return
	}

	// Evict locally first so released memory is available to reacquire.
	for c.size+itemSize > c.capacity {
		ent := c.evictList.Back()
		if ent == nil {
			break
		}

		c.removeElement(ent)
	}

	if c.rc != nil && !c.rc.TryAcquireMemory(itemSize) {
		return
	}

	ent := &entry{key, b}
	element := c.evictList.PushFront(ent)
	c.items[key] = element
	c.size += itemSize
}

func (c *LRU) evict() {
	for c.size > c.capacity {
		element := c.evictList.Back()
		if element == nil {
			break
		}

		c.removeElement(element)
	}
}

func (c *LRU) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)

	itemSize := int64(len(kv.value))
	c.size -= itemSize

	if c.rc != nil {
		c.rc.ReleaseMemory(itemSize)
	}
}

func flightKey(k Key) string {
	return k.Path + "\x00" + strconv.FormatInt(k.Offset, 10) + "\x00" + strconv.FormatInt(k.Length, 10)
}

// fetch reads the requested span from its source and decompresses it when
// a codec is attached. Short reads are errors, never short spans.
func fetch(ctx context.Context, req Request) ([]byte, error) {
	if req.Length == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, req.Length)

	n, err := req.Source.ReadAt(ctx, buf, req.Offset)
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("fibercache: read %q at %d: got %d of %d bytes: %w", req.Path, req.Offset, n, len(buf), err)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fibercache: read %q at %d: %w", req.Path, req.Offset, err)
	}

	if req.Codec == nil {
		return buf, nil
	}

	out, err := req.Codec.Decompress(buf)
	if err != nil {
		return nil, fmt.Errorf("fibercache: decompress %q at %d: %w", req.Path, req.Offset, err)
	}

	return out, nil
}
