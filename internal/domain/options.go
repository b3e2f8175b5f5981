package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultOptionsLabel is shown for a line without any chosen option values.
const DefaultOptionsLabel = "Regular"

type Option struct {
	Key   string
	Value string
}

// Options is the exact selection made when an item was added. Order is kept
// for display; equality ignores it.
type Options []Option

// NewOptions builds Options from key/value pairs. A repeated key keeps its
// first position and takes the last value.
func NewOptions(pairs ...Option) Options {
	opts := make(Options, 0, len(pairs))
	for _, p := range pairs {
		opts = opts.With(p.Key, p.Value)
	}
	return opts
}

func (o Options) Get(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// With returns a copy with key set to value.
func (o Options) With(key, value string) Options {
	out := make(Options, len(o), len(o)+1)
	copy(out, o)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Option{Key: key, Value: value})
}

// Equal reports whether both selections hold the same keys with the same values.
func (o Options) Equal(other Options) bool {
	return o.contains(other) && other.contains(o)
}

func (o Options) contains(other Options) bool {
	for _, opt := range other {
		v, ok := o.Get(opt.Key)
		if !ok || v != opt.Value {
			return false
		}
	}
	return true
}

// Format joins the non-empty values for display.
func (o Options) Format() string {
	values := make([]string, 0, len(o))
	for _, opt := range o {
		if opt.Value != "" {
			values = append(values, opt.Value)
		}
	}
	if len(values) == 0 {
		return DefaultOptionsLabel
	}
	return strings.Join(values, ", ")
}

func (o Options) MarshalJSON() ([]byte, error) {
	pairs := make([]orderedPair, 0, len(o))
	for _, opt := range o {
		pairs = append(pairs, orderedPair{key: opt.Key, value: opt.Value})
	}
	return encodeObject(pairs)
}

func (o *Options) UnmarshalJSON(data []byte) error {
	opts := Options{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("option %q must be a string: %w", key, err)
		}
		opts = opts.With(key, value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	*o = opts
	return nil
}
