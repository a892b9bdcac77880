package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/koko-king/models"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(5.6, -0.18, 5.6, -0.18), 1e-9)
	// East Legon to Osu is roughly 10 km
	assert.InDelta(t, 10.4, Distance(5.6454, -0.1520, 5.5571, -0.1823), 0.5)
}

func TestNearestBranch(t *testing.T) {
	branches := []models.Branch{
		{ID: "no-coords"},
		{ID: "osu", Coordinates: &models.Coordinates{Lat: 5.5571, Lng: -0.1823}},
		{ID: "spintex", Coordinates: &models.Coordinates{Lat: 5.6384, Lng: -0.1078}},
	}
	b, d, ok := NearestBranch(5.64, -0.11, branches)
	assert.True(t, ok)
	assert.Equal(t, "spintex", b.ID)
	assert.Less(t, d, 1.0)

	_, _, ok = NearestBranch(5.6, -0.1, []models.Branch{{ID: "x"}})
	assert.False(t, ok)
}
