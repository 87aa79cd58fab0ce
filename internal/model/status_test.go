package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNext(t *testing.T) {
	tests := []struct {
		from Status
		want Status
		ok   bool
	}{
		{StatusPending, StatusScheduled, true},
		{StatusScheduled, StatusInBuild, true},
		{StatusInBuild, StatusReadyForPickup, true},
		{StatusReadyForPickup, "", false},
		{Status("archived"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, ok := tt.from.Next()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusCanAdvanceTo(t *testing.T) {
	assert.True(t, StatusPending.CanAdvanceTo(StatusScheduled))
	assert.False(t, StatusPending.CanAdvanceTo(StatusInBuild), "skips are not forward steps")
	assert.False(t, StatusInBuild.CanAdvanceTo(StatusScheduled), "reverses are not forward steps")
	assert.False(t, StatusReadyForPickup.CanAdvanceTo(StatusPending))
}

func TestStatusValidAndTerminal(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
		assert.NotEmpty(t, s.Label(), s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("done").Valid())
	assert.True(t, StatusReadyForPickup.IsTerminal())
	assert.False(t, StatusInBuild.IsTerminal())
}

func TestStatusesReturnsCopy(t *testing.T) {
	s := Statuses()
	s[0] = "mutated"
	assert.Equal(t, StatusPending, Statuses()[0])
}

func TestRolePriority(t *testing.T) {
	assert.Equal(t, 0, RoleVM.Priority())
	assert.Equal(t, 1, RoleID.Priority())
	assert.Equal(t, 2, RoleSales.Priority())
	assert.Equal(t, 3, RequesterRole("Logistics").Priority())
	assert.Equal(t, 3, RequesterRole("").Priority())
}

func TestToggleFlag(t *testing.T) {
	r := BuildRequest{ID: "a"}

	assert.True(t, r.ToggleFlag(FlagMissingStock))
	assert.True(t, r.HasFlag(FlagMissingStock))
	assert.False(t, r.HasFlag(FlagLateDelivery))

	assert.False(t, r.ToggleFlag(FlagMissingStock))
	assert.False(t, r.MissingStock)

	assert.False(t, Flag("urgent").Valid())
	assert.False(t, r.ToggleFlag(Flag("urgent")))
}
