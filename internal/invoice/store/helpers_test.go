package store_test

import (
	"context"
	"time"
)

type memoryKV struct {
	data map[string][]byte
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}

	m.data[key] = value

	return nil
}

func timeNow() time.Time {
	return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
}
