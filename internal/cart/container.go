package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

// LineItem is one product entry in the cart. Name and ImageURL are display
// snapshots taken at add time; they do not track later product edits.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Quantity int    `json:"quantity"`
}

// ProductRef carries the product fields snapshotted into a new line item.
type ProductRef struct {
	ID       string
	Name     string
	ImageURL string
}

type loadState uint8

const (
	stateUnloaded loadState = iota
	stateLoading
	stateLoaded
)

const persistWriteTimeout = 5 * time.Second

// Container is the single source of truth for one cart. In-memory state is
// authoritative for the session; every mutation re-serializes the whole cart
// and hands it to a coalescing writer, so a slow early write can never
// overwrite a later one. Storage failures are logged and absorbed: the cart
// keeps working in memory for the rest of the session.
type Container struct {
	key   string
	store Store
	logg  *logger.Logger

	mu    sync.Mutex
	state loadState
	items []LineItem
	seq   uint64

	debounce  time.Duration
	persistCh chan snapshot
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// snapshot is one serialized cart state handed to the writer. The sequence
// number is assigned under the container mutex, so comparing sequences is
// enough to order two snapshots even when goroutines reach the queue out of
// order. drop marks a cleared cart whose storage key should be removed
// instead of rewritten.
type snapshot struct {
	seq  uint64
	blob string
	drop bool
}

// NewContainer builds a container bound to one storage key. The initial load
// from the store is deferred to the first access.
func NewContainer(key string, store Store, debounce time.Duration, logg *logger.Logger) *Container {
	c := &Container{
		key:       key,
		store:     store,
		logg:      logg,
		debounce:  debounce,
		persistCh: make(chan snapshot, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go c.persistLoop()
	return c
}

// Loaded reports whether the initial storage read has completed. An empty
// cart is not authoritative until this returns true.
func (c *Container) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateLoaded
}

// AddItem merges the product into the cart: an existing line item has its
// quantity incremented, otherwise a new line item is appended. Insertion
// order is preserved across updates.
func (c *Container) AddItem(ctx context.Context, product ProductRef, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	c.mu.Lock()
	c.ensureLoadedLocked(ctx)
	merged := false
	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, LineItem{
			ID:       product.ID,
			Name:     product.Name,
			ImageURL: product.ImageURL,
			Quantity: quantity,
		})
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.offer(snap)
}

// RemoveItem deletes the line item with the given product id. Removing an
// absent id is a no-op.
func (c *Container) RemoveItem(ctx context.Context, productID string) {
	c.mu.Lock()
	c.ensureLoadedLocked(ctx)
	changed := false
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			changed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.offer(snap)
	}
}

// UpdateQuantity sets the quantity for a line item outright. A value of zero
// or less removes the item. Unknown ids are ignored.
func (c *Container) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, productID)
		return
	}

	c.mu.Lock()
	c.ensureLoadedLocked(ctx)
	changed := false
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.offer(snap)
	}
}

// Clear empties the cart. The persisted blob is deleted rather than
// rewritten as an empty array, so cleared carts do not linger in storage.
func (c *Container) Clear(ctx context.Context) {
	c.mu.Lock()
	c.ensureLoadedLocked(ctx)
	c.items = nil
	snap := c.snapshotLocked()
	snap.drop = true
	c.mu.Unlock()

	c.offer(snap)
}

// Items returns a copy of the current line items in insertion order.
func (c *Container) Items(ctx context.Context) []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoadedLocked(ctx)
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of all line item quantities, recomputed on every
// read so it can never drift from the items themselves.
func (c *Container) TotalItems(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoadedLocked(ctx)
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Flush writes the current snapshot synchronously, bypassing the debounce.
// Used on shutdown; regular mutations rely on the coalescing writer. An
// empty cart is flushed by deleting the storage key.
func (c *Container) Flush(ctx context.Context) error {
	c.mu.Lock()
	c.ensureLoadedLocked(ctx)
	snap := c.snapshotLocked()
	snap.drop = len(c.items) == 0
	c.mu.Unlock()

	if snap.drop {
		return c.store.Delete(ctx, c.key)
	}
	return c.store.Set(ctx, c.key, snap.blob)
}

// Close stops the background writer and flushes the final snapshot.
func (c *Container) Close(ctx context.Context) {
	c.closeOnce.Do(func() {
		close(c.quit)
		<-c.done
		if err := c.Flush(ctx); err != nil && c.logg != nil {
			c.logg.Error(ctx, "cart.flush_failed", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "flush cart"))
		}
	})
}

// ensureLoadedLocked performs the one-time storage read. A failed read is
// treated as "no saved cart": the error is logged, never surfaced.
func (c *Container) ensureLoadedLocked(ctx context.Context) {
	if c.state == stateLoaded {
		return
	}
	c.state = stateLoading

	blob, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "cart.load_failed", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load cart"))
		}
		c.state = stateLoaded
		return
	}
	if ok && blob != "" {
		var items []LineItem
		if err := json.Unmarshal([]byte(blob), &items); err != nil {
			if c.logg != nil {
				c.logg.Error(ctx, "cart.decode_failed", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode cart blob"))
			}
		} else {
			c.items = items
		}
	}
	c.state = stateLoaded
}

// snapshotLocked serializes the current items and stamps the snapshot with
// the next sequence number. Callers must hold c.mu.
func (c *Container) snapshotLocked() snapshot {
	c.seq++
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		// Marshal of plain structs cannot fail; keep the writer fed anyway.
		return snapshot{seq: c.seq, blob: "[]"}
	}
	return snapshot{seq: c.seq, blob: string(blob)}
}

// offer places the snapshot in the single-slot persist queue. When the slot
// is occupied the higher-sequence snapshot survives, so a goroutine that
// was descheduled between snapshotting and enqueueing can never evict a
// newer state with an older one.
func (c *Container) offer(snap snapshot) {
	for {
		select {
		case c.persistCh <- snap:
			return
		default:
		}
		select {
		case prev := <-c.persistCh:
			if prev.seq > snap.seq {
				snap = prev
			}
		default:
		}
	}
}

func (c *Container) persistLoop() {
	defer close(c.done)
	var lastWritten uint64
	for {
		select {
		case <-c.quit:
			return
		case snap := <-c.persistCh:
			if c.debounce > 0 {
				timer := time.NewTimer(c.debounce)
			drain:
				for {
					select {
					case <-c.quit:
						timer.Stop()
						if snap.seq > lastWritten {
							c.write(snap)
						}
						return
					case newer := <-c.persistCh:
						if newer.seq > snap.seq {
							snap = newer
						}
					case <-timer.C:
						break drain
					}
				}
			}
			if snap.seq <= lastWritten {
				continue
			}
			c.write(snap)
			lastWritten = snap.seq
		}
	}
}

func (c *Container) write(snap snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), persistWriteTimeout)
	defer cancel()
	var err error
	if snap.drop {
		err = c.store.Delete(ctx, c.key)
	} else {
		err = c.store.Set(ctx, c.key, snap.blob)
	}
	if err != nil && c.logg != nil {
		c.logg.Error(ctx, "cart.persist_failed", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist cart"))
	}
}
