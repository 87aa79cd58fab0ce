package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.December, 1), d)
	assert.Equal(t, "2024-12-01", d.String())

	d, err = ParseDate("2024-12-01T15:04:05+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", d.String())

	_, err = ParseDate("12/01/2024")
	assert.Error(t, err)
}

func TestDateCompareIsCalendarOrder(t *testing.T) {
	// "2024-9-30" style strings would sort wrong lexically; parsed dates do not.
	a := NewDate(2024, time.September, 30)
	b := NewDate(2024, time.October, 1)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestBuildRequestJSONShape(t *testing.T) {
	r := BuildRequest{
		ID:                "abc",
		ArticleNumber:     "123.456.78",
		ItemName:          "LACK Side Table, White",
		WarehouseLocation: "Aisle 12, Bin 04",
		StockStatus:       StockInStock,
		ProjectDueDate:    NewDate(2024, time.December, 1),
		Status:            StatusPending,
		RequesterRole:     RoleVM,
		ProjectName:       "Living Room Refresh",
		SizeCategory:      SizeMedium,
		PickupMethod:      PickupSelfServe,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2024-12-01", raw["projectDueDate"])
	assert.Equal(t, "pending", raw["status"])
	assert.NotContains(t, raw, "missingStock", "false flags are omitted")
	assert.NotContains(t, raw, "deliveryWindow")

	var back BuildRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestDateUnmarshalEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
}
