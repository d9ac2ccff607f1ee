package storage

import (
	"context"
)

// Entry is one key and the value to store under it.
type Entry struct {
	Key   string
	Value []byte
}

// BatchWriter is implemented by stores that write several keys all-or-nothing.
type BatchWriter interface {
	SetBatch(ctx context.Context, entries []Entry) error
}

// SetAll writes entries through kv's BatchWriter when it has one, and one key at a
// time otherwise. Without a BatchWriter, entries before a failed one stay written.
func SetAll(ctx context.Context, kv KeyValue, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if batch, ok := kv.(BatchWriter); ok {
		return batch.SetBatch(ctx, entries)
	}
	for _, entry := range entries {
		if err := kv.Set(ctx, entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) SetBatch(_ context.Context, entries []Entry) error {
	for _, entry := range entries {
		if err := validateKey(entry.Key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		m.values[entry.Key] = append([]byte(nil), entry.Value...)
	}
	return nil
}
