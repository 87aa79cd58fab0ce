package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		name     string
		ready    int
		capacity int
		percent  int
		tier     Tier
	}{
		{"empty", 0, 10, 0, TierNormal},
		{"half", 5, 10, 50, TierNormal},
		{"just over half", 6, 10, 60, TierWarning},
		{"eighty", 8, 10, 80, TierWarning},
		{"ninety", 9, 10, 90, TierCritical},
		{"full", 10, 10, 100, TierCritical},
		{"overfull clamps", 15, 10, 100, TierCritical},
		{"rounds half up", 1, 8, 13, TierNormal},
		{"rounds down", 1, 3, 33, TierNormal},
		{"zero capacity with ready", 1, 0, 100, TierCritical},
		{"zero capacity empty", 0, 0, 0, TierNormal},
		{"negative capacity", 2, -5, 100, TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Capacity(tt.ready, tt.capacity)
			assert.Equal(t, tt.percent, r.Percent)
			assert.Equal(t, tt.tier, r.Tier)
			assert.Equal(t, tt.ready, r.Ready)
			assert.Equal(t, tt.capacity, r.Capacity)
		})
	}
}

func TestCapacityPercentAlwaysInRange(t *testing.T) {
	for ready := 0; ready <= 30; ready++ {
		for capacity := -2; capacity <= 20; capacity++ {
			p := Capacity(ready, capacity).Percent
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}
