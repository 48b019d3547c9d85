package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/internal/normalize"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

func TestTables(t *testing.T) {
	t.Parallel()

	t.Run("envelope with untagged relations", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"tables":[{"tableId":"T1","name":"Person",
			"relations":[{"name":"owner","toTableName":"Users"}],
			"geoRelations":[{"name":"location","toTableName":"geo"}]}]}`)

		tables, err := normalize.Tables(raw)
		require.NoError(t, err)
		require.Len(t, tables, 1)

		assert.Equal(t, "Person", tables[0].Name)
		assert.Equal(t, console.DataTypeDataRef, tables[0].Relations[0].DataType)
		assert.Equal(t, console.DataTypeGeoRef, tables[0].GeoRelations[0].DataType)
	})

	t.Run("bare array keeps server data type", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`[{"name":"Orders","relations":[{"name":"items","dataType":"CUSTOM"}]}]`)

		tables, err := normalize.Tables(raw)
		require.NoError(t, err)
		require.Len(t, tables, 1)
		assert.Equal(t, "CUSTOM", tables[0].Relations[0].DataType)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		tables, err := normalize.Tables(nil)
		require.NoError(t, err)
		assert.Empty(t, tables)
		assert.NotNil(t, tables)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := normalize.Tables([]byte(`[{"name":`))
		require.ErrorIs(t, err, console.ErrUnexpectedResponse)
	})
}

func TestCacheEntries(t *testing.T) {
	t.Parallel()

	t.Run("object value with null expiry", func(t *testing.T) {
		t.Parallel()

		entries, err := normalize.CacheEntries([]byte(`{"key1":{"value":{"a":1},"expireAt":null}}`))
		require.NoError(t, err)

		list := normalize.CacheList(entries, 0)

		assert.Equal(t, &console.CacheList{
			Data: []console.CacheEntry{
				{ObjectID: "key1", Key: "key1", Value: `{"a":1}`, ExpireAt: nil},
			},
			TotalRows: 0,
		}, list)
	})

	t.Run("string values stay unquoted and order is kept", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{
			"zeta":  {"value": "plain text", "expireAt": 1700000000000},
			"alpha": {"value": [1, 2,  3]},
			"mid":   {"value": 12.5},
			"flag":  {"value": true},
			"none":  {"value": null}
		}`)

		entries, err := normalize.CacheEntries(raw)
		require.NoError(t, err)
		require.Len(t, entries, 5)

		keys := make([]string, 0, len(entries))
		for _, entry := range entries {
			keys = append(keys, entry.Key)
			assert.Equal(t, entry.Key, entry.ObjectID)
		}

		assert.Equal(t, []string{"zeta", "alpha", "mid", "flag", "none"}, keys)
		assert.Equal(t, "plain text", entries[0].Value)
		require.NotNil(t, entries[0].ExpireAt)
		assert.Equal(t, int64(1700000000000), *entries[0].ExpireAt)
		assert.Equal(t, "[1,2,3]", entries[1].Value)
		assert.Equal(t, "12.5", entries[2].Value)
		assert.Equal(t, "true", entries[3].Value)
		assert.Equal(t, "null", entries[4].Value)
	})

	t.Run("values are re-encoded canonically", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{
			"obj":    {"value": {"z": 1.50, "a": 1e2, "c": "é <b>", "n": [2.0, -0.0, 1E-7]}},
			"whole":  {"value": 2.0},
			"big":    {"value": 1e21},
			"nested": {"value": {"q": "say \"hi\"\n", "e": {}, "l": []}},
			"huge":   {"value": 1e400}
		}`)

		entries, err := normalize.CacheEntries(raw)
		require.NoError(t, err)
		require.Len(t, entries, 5)

		assert.Equal(t, `{"z":1.5,"a":100,"c":"é <b>","n":[2,0,1e-7]}`, entries[0].Value)
		assert.Equal(t, "2", entries[1].Value)
		assert.Equal(t, "1e+21", entries[2].Value)
		assert.Equal(t, `{"q":"say \"hi\"\n","e":{},"l":[]}`, entries[3].Value)
		assert.Equal(t, "null", entries[4].Value)
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "null", "{}"} {
			entries, err := normalize.CacheEntries([]byte(raw))
			require.NoError(t, err, raw)
			assert.Empty(t, entries, raw)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		t.Parallel()

		_, err := normalize.CacheEntries([]byte(`[1,2]`))
		require.ErrorIs(t, err, console.ErrUnexpectedResponse)
		require.ErrorIs(t, err, console.ErrInvalidCacheEntry)
	})
}

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "bare number", raw: "42", want: 42},
		{name: "zero", raw: " 0\n", want: 0},
		{name: "wrapped", raw: `{"count":7}`, want: 7},
		{name: "missing count", raw: `{"total":7}`, wantErr: true},
		{name: "text", raw: "many", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalize.Count([]byte(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, console.ErrInvalidCountResponse)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatedCounter(t *testing.T) {
	t.Parallel()

	counter, err := normalize.CreatedCounter([]byte(`{"name":"visits","value":3}`), "visits")
	require.NoError(t, err)
	assert.Equal(t, &console.Counter{ObjectID: "visits", Name: "visits", Value: 3}, counter)

	counter, err = normalize.CreatedCounter(nil, "downloads")
	require.NoError(t, err)
	assert.Equal(t, "downloads", counter.ObjectID)
	assert.Equal(t, "downloads", counter.Name)

	_, err = normalize.CreatedCounter([]byte(`nope`), "x")
	require.ErrorIs(t, err, console.ErrUnexpectedResponse)
}

func TestCounters(t *testing.T) {
	t.Parallel()

	counters, err := normalize.Counters([]byte(`[{"name":"a","value":1},{"name":"b","value":2}]`))
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "a", counters[0].ObjectID)
	assert.Equal(t, "b", counters[1].ObjectID)

	counters, err = normalize.Counters([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, counters)
	assert.Empty(t, counters)
}
