package editor

import (
	"context"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/schedule"
	"github.com/MrJamesThe3rd/invoi/internal/urlstate"
)

// DefaultSaveDelay is the quiet period after the last edit before the document is saved.
const DefaultSaveDelay = 400 * time.Millisecond

// DefaultSaveTimeout bounds a single save.
const DefaultSaveTimeout = 5 * time.Second

//go:generate mockgen -source=editor.go -destination=editor_mock.go -package=editor
type Persister interface {
	Load(ctx context.Context) (invoice.Invoice, bool)
	Save(ctx context.Context, inv invoice.Invoice)
}

// Navigator exposes the query string of the address the document is shared under.
type Navigator interface {
	Query() url.Values
	// ReplaceQuery swaps the current query in place without adding a history entry.
	ReplaceQuery(q url.Values)
}

type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}

	return "unknown"
}

type Option func(*Editor)

func WithSaveDelay(d time.Duration) Option {
	return func(e *Editor) {
		e.saveDelay = d
	}
}

// WithSaveTimeout bounds how long one save may take.
func WithSaveTimeout(d time.Duration) Option {
	return func(e *Editor) {
		e.saveTimeout = d
	}
}

// WithClock sets the time source used to date the default document.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.now = now
	}
}

// Editor owns the live invoice. Every mutation publishes a new document value;
// readers never see a document that is being changed.
type Editor struct {
	persist   Persister
	nav       Navigator
	sched     schedule.Scheduler
	saveDelay   time.Duration
	saveTimeout time.Duration
	now         func() time.Time

	defaults invoice.Invoice
	saves    *schedule.Debouncer
	doc      atomic.Pointer[invoice.Invoice]

	mu      sync.Mutex
	state   State
	saveCtx context.Context
}

func New(persist Persister, nav Navigator, sched schedule.Scheduler, opts ...Option) *Editor {
	e := &Editor{
		persist:   persist,
		nav:       nav,
		sched:     sched,
		saveDelay:   DefaultSaveDelay,
		saveTimeout: DefaultSaveTimeout,
		now:         time.Now,
		saveCtx:     context.Background(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.defaults = invoice.Default(e.now())
	e.saves = schedule.NewDebouncer(e.sched, e.saveDelay)

	doc := e.defaults.Clone()
	e.doc.Store(&doc)

	return e
}

// Mount loads the saved document and merges the link overrides on top of it.
// It blocks until loading finishes; only the first call does anything.
func (e *Editor) Mount(ctx context.Context) {
	e.mu.Lock()
	if e.state != Uninitialized {
		e.mu.Unlock()
		return
	}

	e.state = Loading
	e.saveCtx = context.WithoutCancel(ctx)
	e.mu.Unlock()

	saved, found := e.persist.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.Current()
	if found {
		doc = saved.Clone()
	}

	doc = urlstate.Decode(e.nav.Query(), doc)

	e.doc.Store(&doc)
	e.state = Ready
	e.changed(doc)
}

// Current returns a snapshot of the document.
func (e *Editor) Current() invoice.Invoice {
	return e.doc.Load().Clone()
}

// Defaults is the document a fresh session starts from.
func (e *Editor) Defaults() invoice.Invoice {
	return e.defaults.Clone()
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

func (e *Editor) Ready() bool {
	return e.State() == Ready
}

func (e *Editor) Subtotal() float64 {
	return e.doc.Load().Subtotal()
}

// Update sets a scalar field from its text form. Unknown fields are ignored.
func (e *Editor) Update(field invoice.Field, value string) {
	e.mutate(func(inv invoice.Invoice) (invoice.Invoice, bool) {
		return inv.With(field, value)
	})
}

// UpdateItem sets one column of the line item with the given id.
func (e *Editor) UpdateItem(id string, field invoice.ItemField, value string) {
	e.mutate(func(inv invoice.Invoice) (invoice.Invoice, bool) {
		i := indexOf(inv.LineItems, id)
		if i < 0 {
			return inv, false
		}

		item, ok := inv.LineItems[i].With(field, value)
		if !ok {
			return inv, false
		}

		inv.LineItems[i] = item

		return inv, true
	})
}

// AddItem appends a blank line item and returns it.
func (e *Editor) AddItem() invoice.LineItem {
	item := invoice.NewLineItem()

	e.mutate(func(inv invoice.Invoice) (invoice.Invoice, bool) {
		inv.LineItems = append(inv.LineItems, item)
		return inv, true
	})

	return item
}

// RemoveItem deletes the line item with the given id. The list may become empty.
func (e *Editor) RemoveItem(id string) {
	e.mutate(func(inv invoice.Invoice) (invoice.Invoice, bool) {
		i := indexOf(inv.LineItems, id)
		if i < 0 {
			return inv, false
		}

		inv.LineItems = slices.Delete(inv.LineItems, i, i+1)

		return inv, true
	})
}

// Flush saves the document now if a save is pending.
func (e *Editor) Flush(ctx context.Context) {
	if e.saves.Stop() {
		e.persist.Save(ctx, e.Current())
	}
}

// Close drops any pending save.
func (e *Editor) Close() {
	e.saves.Stop()
}

// mutate applies fn to a private copy of the document and publishes the result.
func (e *Editor) mutate(fn func(invoice.Invoice) (invoice.Invoice, bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, ok := fn(e.Current())
	if !ok {
		return
	}

	e.doc.Store(&next)

	if e.state == Ready {
		e.changed(next)
	}
}

// changed must be called with e.mu held.
func (e *Editor) changed(doc invoice.Invoice) {
	base, timeout := e.saveCtx, e.saveTimeout
	e.saves.Trigger(func() {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		e.persist.Save(ctx, e.Current())
	})

	e.nav.ReplaceQuery(urlstate.Encode(doc, e.defaults, e.nav.Query()))
}

func indexOf(items []invoice.LineItem, id string) int {
	return slices.IndexFunc(items, func(item invoice.LineItem) bool {
		return item.ID == id
	})
}
