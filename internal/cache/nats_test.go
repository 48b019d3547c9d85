package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/internal/cache"
	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

var errTestBucket = errors.New("bucket offline")

type fakeEntry struct {
	key   string
	value []byte
}

func (e *fakeEntry) Bucket() string             { return "test" }
func (e *fakeEntry) Key() string                { return e.key }
func (e *fakeEntry) Value() []byte              { return e.value }
func (e *fakeEntry) Revision() uint64           { return 1 }
func (e *fakeEntry) Created() time.Time         { return time.Time{} }
func (e *fakeEntry) Delta() uint64              { return 0 }
func (e *fakeEntry) Operation() nats.KeyValueOp { return nats.KeyValuePut }

type fakeKeyValue struct {
	entries map[string][]byte
	err     error
}

func newFakeKeyValue() *fakeKeyValue {
	return &fakeKeyValue{entries: map[string][]byte{}}
}

func (kv *fakeKeyValue) Get(key string) (nats.KeyValueEntry, error) {
	if kv.err != nil {
		return nil, kv.err
	}

	value, ok := kv.entries[key]
	if !ok {
		return nil, nats.ErrKeyNotFound
	}

	return &fakeEntry{key: key, value: value}, nil
}

func (kv *fakeKeyValue) Put(key string, value []byte) (uint64, error) {
	if kv.err != nil {
		return 0, kv.err
	}

	kv.entries[key] = value

	return uint64(len(kv.entries)), nil
}

func (kv *fakeKeyValue) Delete(key string, opts ...nats.DeleteOpt) error {
	if kv.err != nil {
		return kv.err
	}

	_, ok := kv.entries[key]
	if !ok {
		return nats.ErrKeyNotFound
	}

	delete(kv.entries, key)

	return nil
}

func TestNATSMirror_RoundTrip(t *testing.T) {
	t.Parallel()

	kv := newFakeKeyValue()
	mirror := cache.NewNATSMirror(kv, "")
	ctx := context.Background()

	_, err := mirror.Get(ctx)
	require.ErrorIs(t, err, console.ErrStatusMirrorMiss)

	require.NoError(t, mirror.Put(ctx, []byte(`{"version":"1"}`)))
	assert.Contains(t, kv.entries, constants.StatusCacheKey)

	payload, err := mirror.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1"}`, string(payload))

	require.NoError(t, mirror.Delete(ctx))
	require.NoError(t, mirror.Delete(ctx), "deleting a missing key is not an error")

	_, err = mirror.Get(ctx)
	require.ErrorIs(t, err, console.ErrStatusMirrorMiss)
}

func TestNATSMirror_CustomKey(t *testing.T) {
	t.Parallel()

	kv := newFakeKeyValue()
	mirror := cache.NewNATSMirror(kv, "staging.status")

	require.NoError(t, mirror.Put(context.Background(), []byte(`{}`)))
	assert.Contains(t, kv.entries, "staging.status")
	assert.NotContains(t, kv.entries, constants.StatusCacheKey)
}

func TestNATSMirror_Errors(t *testing.T) {
	t.Parallel()

	kv := newFakeKeyValue()
	kv.err = errTestBucket
	mirror := cache.NewNATSMirror(kv, "")
	ctx := context.Background()

	_, err := mirror.Get(ctx)
	require.ErrorIs(t, err, errTestBucket)
	assert.NotErrorIs(t, err, console.ErrStatusMirrorMiss)

	require.ErrorIs(t, mirror.Put(ctx, []byte(`{}`)), errTestBucket)
	require.ErrorIs(t, mirror.Delete(ctx), errTestBucket)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = mirror.Get(cancelled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNATSMirror_BacksSlot(t *testing.T) {
	t.Parallel()

	kv := newFakeKeyValue()
	mirror := cache.NewNATSMirror(kv, "")

	fetcher := &countingFetcher{}
	writer := cache.NewSlot(fetcher.fetch, cache.SlotConfig{Mirror: mirror})

	written, err := writer.Get(context.Background(), false)
	require.NoError(t, err)

	reader := cache.NewSlot(fetcher.fetch, cache.SlotConfig{Mirror: mirror})

	read, err := reader.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, written.Version, read.Version)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}
