package store

import (
	"context"
	"sync"
)

// Entry is one key/value pair written by KV.Set.
type Entry struct {
	Key   string
	Value string
}

// KV is durable key-value storage keyed by string.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes all entries atomically, overwriting previous values.
	Set(ctx context.Context, entries ...Entry) error
	Close() error
}

// MemoryKV keeps values in process memory. It backs `snipman demo` and tests.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
	// FailWrites makes Set return this error when non-nil.
	FailWrites error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: map[string]string{}}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.FailWrites != nil {
		return kv.FailWrites
	}
	for _, e := range entries {
		kv.m[e.Key] = e.Value
	}
	return nil
}

func (kv *MemoryKV) Close() error { return nil }
