package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a document path does not exist
	ErrNotFound = errors.New("document not found")
	// ErrInvalidPath is returned for paths with an odd/even segment mismatch
	ErrInvalidPath = errors.New("invalid document path")
)

// Store is the document database used by every repository. Paths are
// slash-separated: "courses/abc" is a document, "courses/abc/students" a collection.
type Store interface {
	// Get loads the document at path into dest. Returns ErrNotFound when absent.
	Get(ctx context.Context, path string, dest interface{}) error

	// Set overwrites the document at path.
	Set(ctx context.Context, path string, data map[string]interface{}) error

	// Merge upserts the document, deep-merging nested maps into existing data.
	Merge(ctx context.Context, path string, data map[string]interface{}) error

	// Update changes individual fields of an existing document. Returns ErrNotFound when absent.
	Update(ctx context.Context, path string, updates []Update) error

	// Delete removes the document. Sub-collections are left untouched.
	Delete(ctx context.Context, path string) error

	// Add creates a document with a generated id under collection and returns the id.
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)

	// Stream calls fn for every document in collection matching all filters.
	// Iteration stops at the first error returned by fn.
	Stream(ctx context.Context, collection string, filters []Filter, fn func(Document) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Filter is an equality predicate on a top-level field
type Filter struct {
	Field string
	Value interface{}
}

// Where builds an equality filter
func Where(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// Update sets Field (dot-separated for nested fields) to Value
type Update struct {
	Field string
	Value interface{}
}

// Document is one streamed query result
type Document interface {
	ID() string
	DataTo(dest interface{}) error
}

type sentinel int

const (
	serverTimestamp sentinel = iota
)

// ServerTimestamp is replaced by the backend's commit time when written
var ServerTimestamp interface{} = serverTimestamp

type increment struct {
	n int64
}

// Increment atomically adds n to a numeric field when used as an Update value
func Increment(n int64) interface{} {
	return increment{n: n}
}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel
func IsServerTimestamp(v interface{}) bool {
	_, ok := v.(sentinel)
	return ok
}

// IncrementBy returns the delta of an Increment value
func IncrementBy(v interface{}) (int64, bool) {
	inc, ok := v.(increment)
	return inc.n, ok
}

// Join builds a path from segments
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// SplitDocPath splits a document path into its parent collection and id
func SplitDocPath(path string) (collection, id string, err error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	for _, s := range segments {
		if s == "" {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], nil
}

// ValidCollectionPath reports whether path addresses a collection
func ValidCollectionPath(path string) error {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments)%2 != 1 {
		return fmt.Errorf("%w: %q is not a collection", ErrInvalidPath, path)
	}
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return nil
}

// Resolve replaces sentinels with concrete values for backends without native support
func Resolve(data map[string]interface{}, now time.Time) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case sentinel:
			out[k] = now
		case map[string]interface{}:
			out[k] = Resolve(val, now)
		default:
			out[k] = v
		}
	}
	return out
}

// MergeInto deep-merges src into dst
func MergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]interface{}); ok {
			if dstMap, ok := dst[k].(map[string]interface{}); ok {
				MergeInto(dstMap, srcMap)
				continue
			}
			cp := make(map[string]interface{}, len(srcMap))
			MergeInto(cp, srcMap)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

// ApplyUpdates applies field updates in place, resolving sentinels
func ApplyUpdates(data map[string]interface{}, updates []Update, now time.Time) error {
	for _, u := range updates {
		parts := strings.Split(u.Field, ".")
		target := data
		for _, p := range parts[:len(parts)-1] {
			next, ok := target[p].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				target[p] = next
			}
			target = next
		}
		leaf := parts[len(parts)-1]

		switch val := u.Value.(type) {
		case sentinel:
			target[leaf] = now
		case increment:
			current, err := toInt64(target[leaf])
			if err != nil {
				return fmt.Errorf("cannot increment %s: %w", u.Field, err)
			}
			target[leaf] = current + val.n
		default:
			target[leaf] = u.Value
		}
	}
	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("non-numeric value %T", v)
	}
}

// Matches reports whether data satisfies every filter
func Matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if !equalValues(data[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Decode copies a generic map into dest using its json tags
func Decode(data map[string]interface{}, dest interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
