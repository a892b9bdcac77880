package catalog

import (
	"time"

	"github.com/yeremiapane/koko-king/models"
)

// DefaultBranches seeds an empty branch registry.
func DefaultBranches(now time.Time) []models.Branch {
	return []models.Branch{
		{
			ID:          eastLegon,
			Name:        "East Legon",
			Location:    "East Legon Main Road, Accra",
			Phone:       "+233 24 123 4567",
			Manager:     "John Mensah",
			Coordinates: &models.Coordinates{Lat: 5.6454, Lng: -0.1520},
			CreatedAt:   now,
		},
		{
			ID:          osu,
			Name:        "Osu",
			Location:    "Osu Oxford Street, Accra",
			Phone:       "+233 24 234 5678",
			Manager:     "Ama Serwaa",
			Coordinates: &models.Coordinates{Lat: 5.5571, Lng: -0.1823},
			CreatedAt:   now,
		},
		{
			ID:        "branch-cantonments",
			Name:      "Cantonments",
			Location:  "Cantonments Road, Accra",
			Phone:     "+233 24 345 6789",
			Manager:   "Kwame Boateng",
			CreatedAt: now,
		},
		{
			ID:        "branch-airport",
			Name:      "Airport Residential",
			Location:  "Airport Residential Area, Accra",
			Phone:     "+233 24 456 7890",
			Manager:   "Grace Asante",
			CreatedAt: now,
		},
		{
			ID:          spintex,
			Name:        "Spintex",
			Location:    "Spintex Road, Accra",
			Phone:       "+233 24 567 8901",
			Manager:     "Kofi Darko",
			Coordinates: &models.Coordinates{Lat: 5.6384, Lng: -0.1078},
			CreatedAt:   now,
		},
	}
}
