package rtm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeError reports a record that could not be decoded.
type DecodeError struct {
	Collection string // "tasks", "lists" or "notes"
	Index      int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Collection, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	warn func(msg string)
}

// WithWarnings registers fn to receive messages about tolerated problems,
// such as a collection that is not an array.
func WithWarnings(fn func(msg string)) ParseOption {
	return func(c *parseConfig) {
		c.warn = fn
	}
}

// Load reads and decodes an export from path.
func Load(path string, opts ...ParseOption) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	return ParseBytes(data, opts...)
}

// Parse decodes an export from r.
func Parse(r io.Reader, opts ...ParseOption) (*Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes decodes an export document.
func ParseBytes(data []byte, opts ...ParseOption) (*Export, error) {
	cfg := &parseConfig{warn: func(string) {}}
	for _, opt := range opts {
		opt(cfg)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	tasks, err := decodeCollection[Task](root, "tasks", cfg)
	if err != nil {
		return nil, err
	}
	lists, err := decodeCollection[List](root, "lists", cfg)
	if err != nil {
		return nil, err
	}
	notes, err := decodeCollection[Note](root, "notes", cfg)
	if err != nil {
		return nil, err
	}

	return &Export{Tasks: tasks, Lists: lists, Notes: notes}, nil
}

func decodeCollection[T any](root map[string]json.RawMessage, key string, cfg *parseConfig) ([]T, error) {
	raw, ok := root[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		cfg.warn(fmt.Sprintf("%s is not an array, treating it as empty", key))
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, &DecodeError{Collection: key, Index: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
