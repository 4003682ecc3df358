package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/kv"
)

// Key is the single record under which the current document lives.
const Key = "current-invoice"

// Version is the record layout written by Save.
const Version = 1

type record struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"savedAt"`
	Invoice *invoice.Invoice `json:"invoice"`
}

// Store persists the current invoice in a kv.Store. Storage problems are
// logged and otherwise swallowed: the editor keeps working in memory.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

func New(store kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

// Load returns the saved document. found is false when nothing usable is stored.
func (s *Store) Load(ctx context.Context) (invoice.Invoice, bool) {
	data, found, err := s.kv.Get(ctx, Key)
	if err != nil {
		slog.Warn("loading saved invoice", "error", err)
		return invoice.Invoice{}, false
	}

	if !found || len(bytes.TrimSpace(data)) == 0 {
		return invoice.Invoice{}, false
	}

	inv, err := decode(data)
	if err != nil {
		slog.Warn("decoding saved invoice", "error", err)
		return invoice.Invoice{}, false
	}

	return normalize(inv), true
}

// Save writes inv as the current document.
func (s *Store) Save(ctx context.Context, inv invoice.Invoice) {
	data, err := json.Marshal(record{
		Version: Version,
		SavedAt: s.now().UTC().Truncate(time.Second),
		Invoice: &inv,
	})
	if err != nil {
		slog.Warn("encoding invoice", "error", err)
		return
	}

	if err := s.kv.Put(ctx, Key, data); err != nil {
		slog.Warn("saving invoice", "error", err)
	}
}

// errEmptyRecord marks a versioned record that carries no document.
var errEmptyRecord = errors.New("record has no invoice")

func decode(data []byte) (invoice.Invoice, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return invoice.Invoice{}, fmt.Errorf("reading record: %w", err)
	}

	// Records written before versioning are the bare document.
	payload := data

	if rawVersion, ok := fields["version"]; ok {
		var version int
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			return invoice.Invoice{}, fmt.Errorf("reading record version: %w", err)
		}

		if version > Version {
			return invoice.Invoice{}, fmt.Errorf("record version %d is newer than %d", version, Version)
		}

		payload = fields["invoice"]
		if len(payload) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
			return invoice.Invoice{}, errEmptyRecord
		}
	}

	var inv invoice.Invoice
	if err := json.Unmarshal(payload, &inv); err != nil {
		return invoice.Invoice{}, fmt.Errorf("reading invoice: %w", err)
	}

	return inv, nil
}

// normalize repairs documents edited by hand or by older versions.
func normalize(inv invoice.Invoice) invoice.Invoice {
	if inv.LineItems == nil {
		inv.LineItems = []invoice.LineItem{}
	}

	seen := make(map[string]struct{}, len(inv.LineItems))

	for i := range inv.LineItems {
		id := inv.LineItems[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = invoice.NewLineItem().ID
			inv.LineItems[i].ID = id
		}

		seen[id] = struct{}{}
	}

	return inv
}
