package limits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultRecordName is the key of the single durable record holding all counters.
const DefaultRecordName = "orderCounts"

var ErrMalformedRecord = errors.New("malformed counter record")

// Counts maps a product id to the number of times it was added this week.
type Counts map[string]int

// Store persists weekly order counters for one client device.
//
// Get never fails on a missing or malformed record; both read as empty Counts.
// Errors are reserved for the backend itself being unreachable.
type Store interface {
	Get(ctx context.Context) (Counts, error)
	Increment(ctx context.Context, productID string) error
	Reset(ctx context.Context) error
}

func (c Counts) Clone() Counts {
	cp := make(Counts, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// Decode parses a persisted record. An empty record decodes to empty Counts.
func Decode(raw []byte) (Counts, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Counts{}, nil
	}

	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if m == nil {
		return Counts{}, nil
	}
	for id, n := range m {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative count %d for %q", ErrMalformedRecord, n, id)
		}
	}
	return Counts(m), nil
}

func Encode(c Counts) ([]byte, error) {
	if c == nil {
		c = Counts{}
	}
	b, err := json.Marshal(map[string]int(c))
	if err != nil {
		return nil, fmt.Errorf("encode counters: %w", err)
	}
	return b, nil
}

// decodeOrEmpty absorbs malformed records so callers see an empty mapping.
func decodeOrEmpty(raw []byte, logger *zap.Logger, record string) Counts {
	counts, err := Decode(raw)
	if err != nil {
		logger.Debug("treating malformed counter record as empty",
			zap.String("record", record), zap.Error(err))
		return Counts{}
	}
	return counts
}

type options struct {
	record string
	logger *zap.Logger
}

// Option configures a Store backend.
type Option func(*options)

// WithRecordName overrides DefaultRecordName.
func WithRecordName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.record = name
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{record: DefaultRecordName, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
