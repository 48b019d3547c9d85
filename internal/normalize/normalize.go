// Package normalize shapes raw console API responses into the values returned
// to callers. Every function here is pure: it never performs I/O.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

type tableEnvelope struct {
	Tables []console.Table `json:"tables"`
}

// Tables decodes a table listing, given either as {"tables": [...]} or as a
// bare array, and tags relations that arrived without a data type.
func Tables(raw []byte) ([]console.Table, error) {
	trimmed := bytes.TrimSpace(raw)

	var tables []console.Table

	switch {
	case len(trimmed) == 0:
		return []console.Table{}, nil
	case trimmed[0] == '[':
		err := json.Unmarshal(trimmed, &tables)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding tables: %w", console.ErrUnexpectedResponse, err)
		}
	default:
		var envelope tableEnvelope

		err := json.Unmarshal(trimmed, &envelope)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding tables: %w", console.ErrUnexpectedResponse, err)
		}

		tables = envelope.Tables
	}

	if tables == nil {
		tables = []console.Table{}
	}

	for i := range tables {
		tagRelations(tables[i].Relations, console.DataTypeDataRef)
		tagRelations(tables[i].GeoRelations, console.DataTypeGeoRef)
	}

	return tables, nil
}

func tagRelations(relations []console.Relation, dataType string) {
	for i := range relations {
		if relations[i].DataType == "" {
			relations[i].DataType = dataType
		}
	}
}

type rawCacheEntry struct {
	Value    json.RawMessage `json:"value"`
	ExpireAt *int64          `json:"expireAt"`
}

// CacheEntries decodes a cache page, a JSON object of key to {value, expireAt},
// keeping the keys in the order the server sent them.
func CacheEntries(raw []byte) ([]console.CacheEntry, error) {
	entries := []console.CacheEntry{}

	if len(bytes.TrimSpace(raw)) == 0 {
		return entries, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))

	token, err := decoder.Token()
	if err != nil {
		return nil, invalidCachePage(err)
	}

	if token == nil {
		return entries, nil
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, invalidCachePage(fmt.Errorf("%w: page is not an object", console.ErrInvalidCacheEntry))
	}

	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, invalidCachePage(err)
		}

		key, ok := token.(string)
		if !ok {
			return nil, invalidCachePage(fmt.Errorf("%w: unexpected token %v", console.ErrInvalidCacheEntry, token))
		}

		var item rawCacheEntry

		err = decoder.Decode(&item)
		if err != nil {
			return nil, invalidCachePage(fmt.Errorf("entry %q: %w", key, err))
		}

		var value string

		value, err = stringify(item.Value)
		if err != nil {
			return nil, invalidCachePage(fmt.Errorf("entry %q: %w", key, err))
		}

		entries = append(entries, console.CacheEntry{
			ObjectID: key,
			Key:      key,
			Value:    value,
			ExpireAt: item.ExpireAt,
		})
	}

	_, err = decoder.Token()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, invalidCachePage(err)
	}

	return entries, nil
}

func invalidCachePage(err error) error {
	return fmt.Errorf("%w: decoding cache page: %w", console.ErrUnexpectedResponse, err)
}

// stringify returns a JSON string value as-is and any other value re-encoded
// as compact JSON: object keys keep their order, numbers are rewritten with
// console.FormatNumber (1.50 becomes 1.5, 1e2 becomes 100) and non-ASCII text
// is left unescaped. A missing value becomes "null".
func stringify(value json.RawMessage) (string, error) {
	if len(value) == 0 {
		return "null", nil
	}

	if value[0] == '"' {
		var text string

		err := json.Unmarshal(value, &text)
		if err != nil {
			return "", err
		}

		return text, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.UseNumber()

	var buf bytes.Buffer

	err := writeValue(decoder, &buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func writeValue(decoder *json.Decoder, buf *bytes.Buffer) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	switch token := token.(type) {
	case json.Delim:
		return writeComposite(decoder, buf, token)
	case string:
		writeString(buf, token)
	case json.Number:
		writeNumber(buf, token)
	case bool:
		buf.WriteString(strconv.FormatBool(token))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("%w: unexpected token %v", console.ErrInvalidCacheEntry, token)
	}

	return nil
}

func writeComposite(decoder *json.Decoder, buf *bytes.Buffer, open json.Delim) error {
	isObject := open == '{'

	buf.WriteRune(rune(open))

	for first := true; decoder.More(); first = false {
		if !first {
			buf.WriteByte(',')
		}

		if isObject {
			token, err := decoder.Token()
			if err != nil {
				return err
			}

			key, ok := token.(string)
			if !ok {
				return fmt.Errorf("%w: unexpected key %v", console.ErrInvalidCacheEntry, token)
			}

			writeString(buf, key)
			buf.WriteByte(':')
		}

		err := writeValue(decoder, buf)
		if err != nil {
			return err
		}
	}

	_, err := decoder.Token()
	if err != nil {
		return err
	}

	if isObject {
		buf.WriteByte('}')
	} else {
		buf.WriteByte(']')
	}

	return nil
}

// writeNumber writes number in canonical form. Values beyond the float64
// range have no JSON form and are written as null.
func writeNumber(buf *bytes.Buffer, number json.Number) {
	f, err := strconv.ParseFloat(number.String(), 64)
	if err != nil || math.IsInf(f, 0) {
		buf.WriteString("null")

		return
	}

	buf.WriteString(console.FormatNumber(f))
}

// writeString quotes text, escaping only quotes, backslashes and control
// characters.
func writeString(buf *bytes.Buffer, text string) {
	buf.WriteByte('"')

	for _, r := range text {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)

				continue
			}

			buf.WriteRune(r)
		}
	}

	buf.WriteByte('"')
}

// CacheList combines a cache page with the total row count.
func CacheList(entries []console.CacheEntry, total int64) *console.CacheList {
	if entries == nil {
		entries = []console.CacheEntry{}
	}

	return &console.CacheList{Data: entries, TotalRows: total}
}

// Count decodes a count response, either a bare number or {"count": n}.
func Count(raw []byte) (int64, error) {
	trimmed := bytes.TrimSpace(raw)

	var total int64

	err := json.Unmarshal(trimmed, &total)
	if err == nil {
		return total, nil
	}

	var wrapped struct {
		Count *int64 `json:"count"`
	}

	err = json.Unmarshal(trimmed, &wrapped)
	if err != nil || wrapped.Count == nil {
		return 0, fmt.Errorf("%w: %q", console.ErrInvalidCountResponse, string(trimmed))
	}

	return *wrapped.Count, nil
}

// CreatedCounter decodes the echo of a counter creation. Counters are
// identified by name, so the name doubles as the object id.
func CreatedCounter(raw []byte, name string) (*console.Counter, error) {
	counter := &console.Counter{}

	if len(bytes.TrimSpace(raw)) > 0 {
		err := json.Unmarshal(raw, counter)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding counter: %w", console.ErrUnexpectedResponse, err)
		}
	}

	if counter.Name == "" {
		counter.Name = name
	}

	counter.ObjectID = counter.Name

	return counter, nil
}

// Counters decodes a counter listing and fills in the object ids.
func Counters(raw []byte) ([]console.Counter, error) {
	counters := []console.Counter{}

	if len(bytes.TrimSpace(raw)) == 0 {
		return counters, nil
	}

	err := json.Unmarshal(raw, &counters)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding counters: %w", console.ErrUnexpectedResponse, err)
	}

	if counters == nil {
		counters = []console.Counter{}
	}

	for i := range counters {
		counters[i].ObjectID = counters[i].Name
	}

	return counters, nil
}
