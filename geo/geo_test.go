package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sanFrancisco = GeoPoint{Latitude: 37.7749, Longitude: -122.4194}

func TestDistanceMeters_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		to   GeoPoint
		want float64
	}{
		{"north-east", GeoPoint{37.7849, -122.4094}, 1417.3},
		{"south", GeoPoint{37.7649, -122.4194}, 1111.9},
		{"west", GeoPoint{37.7749, -122.4294}, 878.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(sanFrancisco, tt.to)
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(sanFrancisco, sanFrancisco))
}

func TestDistanceMeters_Antipodal(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusMeters
	assert.InDelta(t, halfCircumference, DistanceMeters(GeoPoint{0, 0}, GeoPoint{0, 180}), 1e-3)
	assert.InDelta(t, halfCircumference, DistanceMeters(GeoPoint{90, 0}, GeoPoint{-90, 0}), 1e-3)
}

func TestValidatePoint(t *testing.T) {
	valid := []GeoPoint{{0, 0}, {90, 180}, {-90, -180}, sanFrancisco}
	for _, p := range valid {
		require.NoError(t, ValidatePoint(p), "%+v", p)
	}

	invalid := []GeoPoint{{90.01, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}, {0, math.NaN()}}
	for _, p := range invalid {
		err := ValidatePoint(p)
		require.Error(t, err, "%+v", p)
		assert.True(t, errors.Is(err, ErrInvalidCoordinate))
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{878.9, "879m"},
		{999.4, "999m"},
		{999.6, "1000m"},
		{1000, "1.0km"},
		{1417.3, "1.4km"},
		{20015086.8, "20015.1km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters), "meters=%v", tt.meters)
	}
}

func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-90, 90),
		gen.Float64Range(-180, 180),
	).Map(func(v []interface{}) GeoPoint {
		return GeoPoint{Latitude: v[0].(float64), Longitude: v[1].(float64)}
	})
}

func TestDistanceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("distance is symmetric", prop.ForAll(
		func(a, b GeoPoint) bool {
			ab := DistanceMeters(a, b)
			ba := DistanceMeters(b, a)
			return math.Abs(ab-ba) <= 1e-6*math.Max(1, math.Max(ab, ba))
		},
		genPoint(),
		genPoint(),
	))

	properties.Property("distance to self is zero", prop.ForAll(
		func(a GeoPoint) bool {
			return DistanceMeters(a, a) == 0
		},
		genPoint(),
	))

	properties.Property("distance is bounded by half the circumference", prop.ForAll(
		func(a, b GeoPoint) bool {
			d := DistanceMeters(a, b)
			return d >= 0 && d <= math.Pi*EarthRadiusMeters+1e-6
		},
		genPoint(),
		genPoint(),
	))

	properties.TestingRun(t)
}
