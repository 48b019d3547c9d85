package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// KeyValue is the subset of nats.KeyValue used by NATSMirror.
type KeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Delete(key string, opts ...nats.DeleteOpt) error
}

// NATSMirror shares the status cache entry between processes through a NATS
// JetStream key-value bucket.
type NATSMirror struct {
	kv   KeyValue
	key  string
	conn *nats.Conn
}

// NewNATSMirror creates a mirror over an existing bucket. An empty key uses
// the default status key.
func NewNATSMirror(kv KeyValue, key string) *NATSMirror {
	if key == "" {
		key = constants.StatusCacheKey
	}

	return &NATSMirror{kv: kv, key: key}
}

// ConnectNATSMirror connects to url and opens bucket, creating it when it does
// not exist. Close releases the connection.
func ConnectNATSMirror(url, bucket string, opts ...nats.Option) (*NATSMirror, error) {
	if bucket == "" {
		bucket = constants.DefaultStatusBucket
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to NATS: %w", constants.ErrMirrorUnavailable, err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("%w: opening JetStream: %w", constants.ErrMirrorUnavailable, err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "console system status",
			History:     1,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("%w: opening bucket %s: %w", constants.ErrMirrorUnavailable, bucket, err)
	}

	mirror := NewNATSMirror(kv, "")
	mirror.conn = conn

	return mirror, nil
}

// Get implements console.StatusMirror.
func (m *NATSMirror) Get(ctx context.Context) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading status mirror: %w", err)
	}

	entry, err := m.kv.Get(m.key)
	if errors.Is(err, nats.ErrKeyNotFound) || (err == nil && entry == nil) {
		return nil, console.ErrStatusMirrorMiss
	}

	if err != nil {
		return nil, fmt.Errorf("reading status mirror: %w", err)
	}

	return entry.Value(), nil
}

// Put implements console.StatusMirror.
func (m *NATSMirror) Put(ctx context.Context, payload []byte) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("writing status mirror: %w", err)
	}

	_, err = m.kv.Put(m.key, payload)
	if err != nil {
		return fmt.Errorf("writing status mirror: %w", err)
	}

	return nil
}

// Delete implements console.StatusMirror.
func (m *NATSMirror) Delete(ctx context.Context) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("deleting status mirror: %w", err)
	}

	err = m.kv.Delete(m.key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting status mirror: %w", err)
	}

	return nil
}

// Close releases the NATS connection opened by ConnectNATSMirror.
func (m *NATSMirror) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}
