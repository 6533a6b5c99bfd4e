package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID_JSON(t *testing.T) {
	pending := Pending()

	testCases := []struct {
		name    string
		id      RecordID
		encoded string
	}{
		{name: "saved", id: Saved(42), encoded: `42`},
		{name: "pending", id: pending, encoded: `"pending:` + pending.Token().String() + `"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.id)
			require.NoError(t, err)
			assert.JSONEq(t, tc.encoded, string(data))

			var decoded RecordID
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tc.id, decoded)
		})
	}
}

func TestRecordID_UnmarshalVariants(t *testing.T) {
	var id RecordID
	require.NoError(t, json.Unmarshal([]byte(`"17"`), &id))
	assert.Equal(t, Saved(17), id)

	require.NoError(t, json.Unmarshal([]byte(`0`), &id))
	assert.True(t, id.IsPending())

	assert.Error(t, json.Unmarshal([]byte(`"pending:not-a-uuid"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
}

func TestRecordID_PendingAreDistinct(t *testing.T) {
	a, b := Pending(), Pending()
	assert.True(t, a.IsPending())
	assert.NotEqual(t, a, b)

	_, err := a.Path()
	assert.ErrorIs(t, err, ErrPendingRecord)

	path, err := Saved(9).Path()
	require.NoError(t, err)
	assert.Equal(t, "/9", path)
}

func TestRecordID_Compare(t *testing.T) {
	testCases := []struct {
		name string
		a, b RecordID
		want int
	}{
		{name: "numeric_not_lexical", a: Saved(9), b: Saved(10), want: -1},
		{name: "equal", a: Saved(100), b: Saved(100), want: 0},
		{name: "greater", a: Saved(1234567), b: Saved(99), want: 1},
		{name: "pending_after_saved", a: Pending(), b: Saved(1), want: 1},
		{name: "saved_before_pending", a: Saved(1), b: Pending(), want: -1},
		{name: "pending_ties", a: Pending(), b: Pending(), want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
		})
	}
}

func TestCacheKey_Covers(t *testing.T) {
	testCases := []struct {
		name   string
		parent CacheKey
		child  CacheKey
		want   bool
	}{
		{name: "same_key", parent: Key("aircraft"), child: Key("aircraft"), want: true},
		{name: "resource_root", parent: Key("weight-balance"), child: Key("weight-balance", 1, 2), want: true},
		{name: "scope_ancestor", parent: Key("weight-balance", 1), child: Key("weight-balance", 1, 2), want: true},
		{name: "scope_sibling_prefix", parent: Key("weight-balance", 1), child: Key("weight-balance", 12), want: false},
		{name: "other_resource", parent: Key("flights"), child: Key("flight", 1), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.parent.Covers(tc.child))
		})
	}
	assert.Equal(t, "weight-balance:1:2", Key("weight-balance", 1, 2).String())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(WaypointData{Code: "BOOTH", Name: "Booth Bay", Lat: 49.1, Lon: -123.2}))

	err := Validate(WaypointData{Code: "B", Name: "Bad", Lat: 91})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code")
	assert.Contains(t, err.Error(), "Lat")

	err = Validate(AircraftData{Registration: "C-GABC"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Make")
}
