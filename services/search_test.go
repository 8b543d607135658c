package services

import (
	"testing"

	"carrent/models"

	"github.com/stretchr/testify/assert"
)

func sampleCars() []models.Car {
	return []models.Car{
		{ID: 1, Brand: "Toyota", PricePerDay: 300, EngineCapacity: 1.8, Seats: 5},
		{ID: 2, Brand: "audi", PricePerDay: 100, EngineCapacity: 3.0, Seats: 4},
		{ID: 3, Brand: "BMW", PricePerDay: 200, EngineCapacity: 2.0, Seats: 2},
	}
}

func TestSortCars(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		desc    bool
		wantIDs []uint
	}{
		{"price ascending", "price", false, []uint{2, 3, 1}},
		{"price descending", "price", true, []uint{1, 3, 2}},
		{"brand is case insensitive", "brand", false, []uint{2, 3, 1}},
		{"engine ascending", "engine", false, []uint{1, 3, 2}},
		{"seats descending", "seats", true, []uint{1, 2, 3}},
		{"unknown key falls back to id order", "bogus", true, []uint{1, 2, 3}},
		{"empty key falls back to id order", "", false, []uint{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := sampleCars()
			SortCars(cars, tt.key, tt.desc)

			gotIDs := make([]uint, 0, len(cars))
			for _, car := range cars {
				gotIDs = append(gotIDs, car.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestHaversine(t *testing.T) {
	assert.Zero(t, Haversine(52.23, 21.01, 52.23, 21.01))

	// Warsaw to Krakow, roughly 252 km.
	got := Haversine(52.2297, 21.0122, 50.0647, 19.9450)
	assert.InDelta(t, 252, got, 5)

	// Symmetric.
	assert.InDelta(t, got, Haversine(50.0647, 19.9450, 52.2297, 21.0122), 1e-9)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "skoda", NormalizeQuery("  Škoda "))
	assert.Equal(t, "citroen", NormalizeQuery("Citroën"))
	assert.Equal(t, "bmw", NormalizeQuery("BMW"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("toyota", "toyota"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Greater(t, Similarity("toyota", "toyot"), 0.8)
	assert.Less(t, Similarity("toyota", "bmw"), 0.3)
}

func TestMatchesBrand(t *testing.T) {
	cars := sampleCars()
	brands := []string{"toyota", "audi", "bmw"}
	matcher := NewBrandMatcher(brands)

	toyota := cars[0]
	assert.True(t, MatchesBrand("toyota", toyota, matcher))
	assert.True(t, MatchesBrand("toy", toyota, matcher), "substring matches")
	assert.True(t, MatchesBrand("toyta", toyota, matcher), "typo within fuzzy distance")
	assert.False(t, MatchesBrand("audi", toyota, matcher))

	// Works without a matcher too.
	assert.True(t, MatchesBrand("toyota", toyota, nil))
	assert.False(t, MatchesBrand("audi", toyota, nil))
}
