package editor_test

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/invoi/internal/editor"
	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/schedule"
	"github.com/MrJamesThe3rd/invoi/internal/schedule/schedtest"
)

var fixedNow = time.Date(2026, 1, 5, 9, 30, 0, 0, time.Local)

type save struct {
	at  time.Duration
	inv invoice.Invoice
}

type fixture struct {
	persist *editor.MockPersister
	loc     *editor.Location
	clock   *schedtest.Scheduler
	ed      *editor.Editor
	saves   []save
}

func newFixture(t *testing.T, link string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	loc, err := editor.NewLocation(link)
	require.NoError(t, err)

	f := &fixture{
		persist: editor.NewMockPersister(ctrl),
		loc:     loc,
		clock:   schedtest.New(),
	}

	f.persist.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, inv invoice.Invoice) {
			f.saves = append(f.saves, save{at: f.clock.Elapsed(), inv: inv})
		}).
		AnyTimes()

	f.ed = editor.New(f.persist, f.loc, f.clock, editor.WithClock(func() time.Time { return fixedNow }))

	return f
}

func (f *fixture) mount(saved *invoice.Invoice) {
	if saved == nil {
		f.persist.EXPECT().Load(gomock.Any()).Return(invoice.Invoice{}, false)
	} else {
		f.persist.EXPECT().Load(gomock.Any()).Return(*saved, true)
	}

	f.ed.Mount(context.Background())
}

func TestEditor_MountWithoutSavedDocument(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")

	assert.Equal(t, editor.Uninitialized, f.ed.State())

	f.mount(nil)

	require.True(t, f.ed.Ready())

	got := f.ed.Current()
	assert.Equal(t, invoice.DefaultNumber, got.InvoiceNumber)
	assert.Equal(t, "2026-01-05", got.IssueDate)
	assert.Len(t, got.LineItems, 1)

	f.clock.Advance(editor.DefaultSaveDelay)
	require.Len(t, f.saves, 1)
	assert.Equal(t, got, f.saves[0].inv)
}

func TestEditor_MountUsesSavedDocument(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")

	saved := invoice.Invoice{
		InvoiceNumber: "INV-0042",
		Currency:      "EUR",
		LineItems:     []invoice.LineItem{{ID: "a", Quantity: 2, Rate: 50}},
	}

	f.mount(&saved)

	assert.Equal(t, saved, f.ed.Current())
	assert.Equal(t, 100.0, f.ed.Subtotal())
	assert.Equal(t, url.Values{"invoiceNumber": {"INV-0042"}, "currency": {"EUR"}}, f.loc.Query())
}

func TestEditor_URLOverridesWin(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/?invoiceNumber=INV-777&print=true")

	saved := invoice.Default(fixedNow)
	saved.InvoiceNumber = "INV-5"
	saved.ToName = "Acme"

	f.mount(&saved)

	got := f.ed.Current()
	assert.Equal(t, "INV-777", got.InvoiceNumber)
	assert.Equal(t, "Acme", got.ToName)
	assert.Equal(t, saved.LineItems, got.LineItems)

	q := f.loc.Query()
	assert.Equal(t, "true", q.Get("print"))
	assert.Equal(t, "INV-777", q.Get("invoiceNumber"))
	assert.Equal(t, "Acme", q.Get("toName"))
}

func TestEditor_MountIsOnce(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")

	f.mount(nil)
	f.ed.Update(invoice.FieldToName, "Acme")

	// A second mount must neither load again nor reset the document.
	f.ed.Mount(context.Background())

	assert.Equal(t, "Acme", f.ed.Current().ToName)
}

func TestEditor_NoSideEffectsBeforeReady(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/?print=true")

	f.ed.Update(invoice.FieldToName, "Early")
	f.ed.AddItem()

	f.clock.Advance(time.Minute)

	assert.Empty(t, f.saves)
	assert.Equal(t, url.Values{"print": {"true"}}, f.loc.Query())
	assert.Equal(t, "Early", f.ed.Current().ToName)
	assert.Len(t, f.ed.Current().LineItems, 2)
}

func TestEditor_PreReadyEdits(t *testing.T) {
	type testCase struct {
		name     string
		saved    *invoice.Invoice
		wantName string
	}

	tests := []testCase{
		{
			name:     "Kept When Nothing Saved",
			saved:    nil,
			wantName: "Early",
		},
		{
			name:     "Replaced By Saved Document",
			saved:    &invoice.Invoice{ToName: "Stored", LineItems: []invoice.LineItem{}},
			wantName: "Stored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "https://invoi.xyz/")

			f.ed.Update(invoice.FieldToName, "Early")
			f.mount(tt.saved)

			assert.Equal(t, tt.wantName, f.ed.Current().ToName)
		})
	}
}

func TestEditor_DebouncedSave(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	f.ed.Update(invoice.FieldToName, "A")
	f.clock.Advance(100 * time.Millisecond)
	f.ed.Update(invoice.FieldToName, "AB")
	f.clock.Advance(100 * time.Millisecond)
	f.ed.Update(invoice.FieldToName, "ABC")

	f.clock.Advance(399 * time.Millisecond)
	assert.Empty(t, f.saves)

	f.clock.Advance(time.Millisecond)
	require.Len(t, f.saves, 1)
	assert.Equal(t, 600*time.Millisecond, f.saves[0].at)
	assert.Equal(t, "ABC", f.saves[0].inv.ToName)

	f.clock.Advance(time.Hour)
	assert.Len(t, f.saves, 1)
}

func TestEditor_CustomSaveDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	persist := editor.NewMockPersister(ctrl)
	clock := schedtest.New()

	loc, err := editor.NewLocation("https://invoi.xyz/")
	require.NoError(t, err)

	persist.EXPECT().Load(gomock.Any()).Return(invoice.Invoice{}, false)
	persist.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(context.Context, invoice.Invoice) {
			assert.Equal(t, time.Second, clock.Elapsed())
		})

	ed := editor.New(persist, loc, clock, editor.WithSaveDelay(time.Second))
	ed.Mount(context.Background())

	clock.Advance(999 * time.Millisecond)
	clock.Advance(time.Millisecond)
}

func TestEditor_SaveIsBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	persist := editor.NewMockPersister(ctrl)
	clock := schedtest.New()

	loc, err := editor.NewLocation("https://invoi.xyz/")
	require.NoError(t, err)

	mountCtx, cancel := context.WithTimeout(context.Background(), time.Minute)

	var saveCtx context.Context

	persist.EXPECT().Load(gomock.Any()).Return(invoice.Invoice{}, false)
	persist.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, _ invoice.Invoice) {
			saveCtx = ctx
		})

	ed := editor.New(persist, loc, clock, editor.WithSaveTimeout(2*time.Second))
	ed.Mount(mountCtx)
	cancel()

	clock.Advance(editor.DefaultSaveDelay)

	require.NotNil(t, saveCtx)

	deadline, ok := saveCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestEditor_UpdateIsIdempotent(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	f.ed.Update(invoice.FieldToName, "Acme")
	once := f.ed.Current()

	f.ed.Update(invoice.FieldToName, "Acme")

	assert.Equal(t, once, f.ed.Current())
}

func TestEditor_URLSync(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/?print=true")
	f.mount(nil)

	f.ed.Update(invoice.FieldInvoiceNumber, "INV-777")
	f.ed.Update(invoice.FieldVATRate, "20")

	assert.Equal(t, url.Values{
		"print":         {"true"},
		"invoiceNumber": {"INV-777"},
		"vatRate":       {"20"},
	}, f.loc.Query())
	assert.Equal(t, "https://invoi.xyz/?invoiceNumber=INV-777&print=true&vatRate=20", f.loc.URL())

	f.ed.Update(invoice.FieldInvoiceNumber, invoice.DefaultNumber)
	assert.Empty(t, f.loc.Query().Get("invoiceNumber"))
}

func TestEditor_LineItems(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	before := f.ed.Current()

	item := f.ed.AddItem()
	require.Len(t, f.ed.Current().LineItems, 2)
	assert.Equal(t, item, f.ed.Current().LineItems[1])

	f.ed.UpdateItem(item.ID, invoice.ItemQuantity, "3")
	f.ed.UpdateItem(item.ID, invoice.ItemRate, "25")
	f.ed.UpdateItem(item.ID, invoice.ItemDescription, "Consulting")
	assert.Equal(t, 75.0, f.ed.Subtotal())

	got, ok := f.ed.Current().Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, "Consulting", got.Description)

	f.ed.RemoveItem(item.ID)
	assert.Equal(t, before, f.ed.Current())

	// The query string never carries line items.
	assert.Empty(t, f.loc.Query())
}

func TestEditor_UnknownItemIsNoop(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)
	f.clock.Advance(time.Second)
	require.Len(t, f.saves, 1)

	before := f.ed.Current()

	f.ed.RemoveItem("does-not-exist")
	f.ed.UpdateItem("does-not-exist", invoice.ItemRate, "10")
	f.ed.UpdateItem(before.LineItems[0].ID, invoice.ItemField("id"), "hijack")

	assert.Equal(t, before, f.ed.Current())

	f.clock.Advance(time.Second)
	assert.Len(t, f.saves, 1)
}

func TestEditor_EmptyItemList(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	f.ed.RemoveItem(f.ed.Current().LineItems[0].ID)

	assert.Empty(t, f.ed.Current().LineItems)
	assert.Zero(t, f.ed.Subtotal())
}

func TestEditor_Flush(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	f.ed.Update(invoice.FieldFromName, "Jane")
	f.ed.Flush(context.Background())

	require.Len(t, f.saves, 1)
	assert.Equal(t, "Jane", f.saves[0].inv.FromName)
	assert.Zero(t, f.saves[0].at)

	f.clock.Advance(time.Second)
	assert.Len(t, f.saves, 1)

	f.ed.Flush(context.Background())
	assert.Len(t, f.saves, 1)
}

func TestEditor_Close(t *testing.T) {
	f := newFixture(t, "https://invoi.xyz/")
	f.mount(nil)

	f.ed.Update(invoice.FieldFromName, "Jane")
	f.ed.Close()

	f.clock.Advance(time.Second)
	assert.Empty(t, f.saves)
}

func TestEditor_ConcurrentReaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	persist := editor.NewMockPersister(ctrl)

	loc, err := editor.NewLocation("https://invoi.xyz/")
	require.NoError(t, err)

	persist.EXPECT().Load(gomock.Any()).Return(invoice.Invoice{}, false)
	ed := editor.New(persist, loc, schedule.Timers{}, editor.WithSaveDelay(time.Hour))
	ed.Mount(context.Background())

	id := ed.Current().LineItems[0].ID

	var wg sync.WaitGroup

	wg.Go(func() {
		for i := range 200 {
			ed.UpdateItem(id, invoice.ItemQuantity, invoice.FormatNumber(float64(i)))
			ed.UpdateItem(id, invoice.ItemRate, "2")
		}
	})

	wg.Go(func() {
		for range 200 {
			inv := ed.Current()
			assert.InDelta(t, inv.LineItems[0].Amount(), inv.Subtotal(), 1e-9)
		}
	})

	wg.Wait()
	ed.Close()
}
