package services

import (
	"math"
	"sort"
	"strings"

	"carrent/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// carLess orders two cars under a named sort strategy.
type carLess func(a, b models.Car) bool

var carSortStrategies = map[string]carLess{
	"price": func(a, b models.Car) bool { return a.PricePerDay < b.PricePerDay },
	"brand": func(a, b models.Car) bool {
		return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
	},
	"engine": func(a, b models.Car) bool { return a.EngineCapacity < b.EngineCapacity },
	"seats":  func(a, b models.Car) bool { return a.Seats < b.Seats },
}

// SortCars sorts in place by the named key; desc flips the order.
// Unrecognized keys fall back to ascending id order.
func SortCars(cars []models.Car, key string, desc bool) {
	less, ok := carSortStrategies[key]
	if !ok {
		sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
		return
	}
	sort.Slice(cars, func(i, j int) bool {
		if desc {
			return less(cars[j], cars[i])
		}
		return less(cars[i], cars[j])
	})
}

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// coordinate pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// NormalizeQuery strips diacritics and case for fuzzy matching.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// NewBrandMatcher builds a fuzzy matcher over the known brand names.
func NewBrandMatcher(brands []string) *closestmatch.ClosestMatch {
	return closestmatch.New(brands, []int{2, 3})
}

// Similarity scores two strings in [0, 1] by levenshtein distance.
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// MatchesBrand reports whether the normalized query names the car's brand,
// either exactly, as a substring, or within fuzzy distance.
func MatchesBrand(query string, car models.Car, matcher *closestmatch.ClosestMatch) bool {
	brand := NormalizeQuery(car.Brand)
	if strings.Contains(brand, query) {
		return true
	}
	if matcher != nil && NormalizeQuery(matcher.Closest(query)) == brand {
		return Similarity(query, brand) >= 0.5
	}
	return Similarity(query, brand) >= 0.75
}
