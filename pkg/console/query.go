package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// nullValue is the type of Null.
type nullValue struct{}

// String implements fmt.Stringer.
func (nullValue) String() string {
	return "null"
}

// Null is an explicitly null query value. Unlike nil, which marks a value as
// undefined and drops the key, Null keeps the key and renders as "null".
var Null = nullValue{}

// queryEntry is a single key and its raw, not yet stringified value.
type queryEntry struct {
	key   string
	value interface{}
}

// Query is an insertion-ordered set of query parameters.
//
// A nil value (or a nil pointer) is undefined and the key is left out of the
// encoded query. Slices and arrays produce one key=value pair per element.
type Query struct {
	entries []queryEntry
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Set stores value under key. Setting an existing key replaces its value but
// keeps its original position. On a nil query Set returns a new query.
func (q *Query) Set(key string, value interface{}) *Query {
	if q == nil {
		q = NewQuery()
	}

	for i := range q.entries {
		if q.entries[i].key == key {
			q.entries[i].value = value

			return q
		}
	}

	q.entries = append(q.entries, queryEntry{key: key, value: value})

	return q
}

// Get returns the raw value stored under key.
func (q *Query) Get(key string) (interface{}, bool) {
	if q == nil {
		return nil, false
	}

	for _, entry := range q.entries {
		if entry.key == key {
			return entry.value, true
		}
	}

	return nil, false
}

// Del removes key from the query. A nil query stays nil.
func (q *Query) Del(key string) *Query {
	if q == nil {
		return nil
	}

	for i := range q.entries {
		if q.entries[i].key == key {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)

			break
		}
	}

	return q
}

// Len returns the number of stored keys, defined or not.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}

	return len(q.entries)
}

// Encode renders the query without a leading "?". It returns an empty string
// when no entry has a defined value.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}

	pairs := make([]string, 0, len(q.entries))

	for _, entry := range q.entries {
		for _, value := range queryValues(entry.value) {
			pairs = append(pairs, EncodeComponent(entry.key)+"="+EncodeComponent(value))
		}
	}

	return strings.Join(pairs, "&")
}

// BuildQuery renders q as key=value pairs joined by "&".
//
//	BuildQuery(NewQuery().Set("pageSize", 10).Set("offset", 20)) // "pageSize=10&offset=20"
func BuildQuery(q *Query) string {
	return q.Encode()
}

// WithQuery appends "?" and the encoded query to path when the query is not empty.
func WithQuery(path string, q *Query) string {
	encoded := q.Encode()
	if encoded == "" {
		return path
	}

	return path + "?" + encoded
}

// queryValues stringifies a raw query value. Undefined values yield nothing.
func queryValues(value interface{}) []string {
	if value == nil {
		return nil
	}

	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []string:
		return typed
	case fmt.Stringer:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}

		return []string{typed.String()}
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}

		return queryValues(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}

		values := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			values = append(values, queryValues(rv.Index(i).Interface())...)
		}

		return values
	default:
		return []string{scalarString(rv)}
	}
}

// scalarString formats a scalar in its shortest text form. Floats follow
// FormatNumber, so 1e21 renders as "1e+21".
func scalarString(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatNumber(rv.Float(), 32)
	case reflect.Float64:
		return formatNumber(rv.Float(), 64)
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprint(rv.Interface())
	}
}
