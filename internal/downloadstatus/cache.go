// Package downloadstatus keeps a per-view map of catalog number to download
// status, fetched from the server in one batched request.
//
// A Cache recomputes whenever the batch key of its input changes or Reload
// is called. Only the most recently started lookup may commit its result;
// earlier lookups are cancelled and their late replies dropped. After Close
// nothing is committed and the observer is not called again.
package downloadstatus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tissueplus/tissue/internal/domain"
)

const defaultLookupTimeout = 15 * time.Second

// Lookup resolves download status for a batch of numbers
type Lookup interface {
	domain.StatusRepository
}

// Observer is notified after every state change.
// OnChange is called with the cache's lock held and must not call back into
// the Cache; hand the state off (e.g. to a channel) instead.
type Observer interface {
	OnChange(state State)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(State)

// OnChange calls f(state)
func (f ObserverFunc) OnChange(state State) { f(state) }

// LookupError wraps a failed batch lookup
type LookupError struct {
	Nums []string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("download status lookup for %d videos failed: %v", len(e.Nums), e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// State is a snapshot of the cache
type State struct {
	Statuses domain.StatusMap // Only numbers the server answered for
	Loading  bool
	Err      error // Last lookup failure, nil after a successful or empty recompute
}

// StatusOf returns the status of num, StatusNone when the server did not report it
func (s State) StatusOf(num string) domain.DownloadStatus {
	return s.Statuses.Get(num)
}

// Option configures a Cache
type Option func(*Cache)

// WithObserver registers an observer for state changes
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// WithTimeout bounds each lookup; zero or negative disables the bound
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// Cache holds the download status of the numbers currently on screen
type Cache struct {
	lookup   Lookup
	logger   *slog.Logger
	observer Observer
	timeout  time.Duration

	mu       sync.Mutex
	nums     []string
	key      string
	hasKey   bool
	trigger  int
	statuses domain.StatusMap
	loading  bool
	err      error

	seq    uint64             // Identifies the lookup allowed to commit
	cancel context.CancelFunc // Cancels the in-flight lookup, if any
	closed bool
	wg     sync.WaitGroup
}

// New creates an idle Cache backed by lookup
func New(lookup Lookup, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		lookup:   lookup,
		logger:   logger,
		timeout:  defaultLookupTimeout,
		statuses: domain.StatusMap{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetVideos updates the input list from videos
func (c *Cache) SetVideos(videos []domain.Video) {
	c.SetNums(ExtractNums(videos))
}

// SetNums updates the input batch. Blank numbers must already be removed
// (see ExtractNums). A lookup starts only when the batch key changes.
func (c *Cache) SetNums(nums []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	key := BatchKey(nums)
	if c.hasKey && key == c.key {
		return
	}

	c.nums = append([]string(nil), nums...)
	c.key = key
	c.hasKey = true
	c.recompute()
}

// Reload re-runs the lookup for the current batch even if it did not change
func (c *Cache) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.trigger++
	c.logger.Debug("download status reload", "trigger", c.trigger, "count", len(c.nums))
	c.recompute()
}

// Snapshot returns the current state
func (c *Cache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Key returns the batch key of the current input
func (c *Cache) Key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Close tears the cache down. In-flight lookups are cancelled and their
// results discarded; later calls to SetNums and Reload do nothing.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Wait blocks until every started lookup goroutine has returned
func (c *Cache) Wait() {
	c.wg.Wait()
}

// recompute must be called with c.mu held
func (c *Cache) recompute() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++

	if len(c.nums) == 0 {
		c.statuses = domain.StatusMap{}
		c.loading = false
		c.err = nil
		c.notifyLocked()
		return
	}

	c.loading = true
	c.err = nil

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel

	seq := c.seq
	nums := append([]string(nil), c.nums...)

	c.notifyLocked()

	c.wg.Add(1)
	go c.fetch(ctx, cancel, seq, nums)
}

func (c *Cache) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, nums []string) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	statuses, err := c.lookup.BatchDownloadStatus(ctx, nums)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		c.logger.Debug("discarding stale download status", "seq", seq, "current", c.seq, "closed", c.closed)
		return
	}

	c.cancel = nil
	c.loading = false

	if err != nil {
		c.err = &LookupError{Nums: nums, Err: err}
		c.logger.Warn("download status lookup failed", "count", len(nums), "error", err)
		c.notifyLocked()
		return
	}

	c.statuses = requestedOnly(statuses, nums)
	c.err = nil
	c.logger.Debug("download status loaded", "requested", len(nums), "returned", len(statuses), "duration", time.Since(start))
	c.notifyLocked()
}

// requestedOnly copies the entries of statuses whose key was asked for
func requestedOnly(statuses domain.StatusMap, nums []string) domain.StatusMap {
	out := make(domain.StatusMap, len(statuses))
	for _, num := range nums {
		if st, ok := statuses[num]; ok {
			out[num] = st
		}
	}
	return out
}

func (c *Cache) snapshotLocked() State {
	return State{
		Statuses: c.statuses.Clone(),
		Loading:  c.loading,
		Err:      c.err,
	}
}

func (c *Cache) notifyLocked() {
	if c.observer == nil {
		return
	}
	c.observer.OnChange(c.snapshotLocked())
}
