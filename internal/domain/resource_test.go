package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleSizeClass_Covers(t *testing.T) {
	tests := []struct {
		name     string
		ceiling  VehicleSizeClass
		vehicle  VehicleSizeClass
		expected bool
	}{
		{"standard bay serves compact", SizeStandard, SizeCompact, true},
		{"standard bay serves standard", SizeStandard, SizeStandard, true},
		{"standard bay rejects large", SizeStandard, SizeLarge, false},
		{"standard bay rejects oversized", SizeStandard, SizeOversized, false},
		{"oversized bay serves everything", SizeOversized, SizeLarge, true},
		{"compact bay serves only compact", SizeCompact, SizeStandard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ceiling.Covers(tt.vehicle))
		})
	}
}

func TestVehicleSizeClass_IsValid(t *testing.T) {
	assert.True(t, SizeCompact.IsValid())
	assert.True(t, SizeOversized.IsValid())
	assert.False(t, VehicleSizeClass("truck").IsValid())
	assert.False(t, VehicleSizeClass("").IsValid())
}

func TestWashBay_CanServe(t *testing.T) {
	bay := &WashBay{
		ID:             1,
		BayNumber:      3,
		MaxVehicleSize: SizeLarge,
		EquipmentTypes: []string{"pressure_washer", "foam_cannon"},
		Status:         ResourceStatusActive,
	}

	t.Run("compatible vehicle and equipment", func(t *testing.T) {
		assert.True(t, bay.CanServe(SizeStandard, []string{"foam_cannon"}))
	})

	t.Run("no equipment required", func(t *testing.T) {
		assert.True(t, bay.CanServe(SizeLarge, nil))
	})

	t.Run("vehicle too big", func(t *testing.T) {
		assert.False(t, bay.CanServe(SizeOversized, nil))
	})

	t.Run("missing equipment", func(t *testing.T) {
		assert.False(t, bay.CanServe(SizeCompact, []string{"ceramic_station"}))
	})

	t.Run("inactive bay rejects everything", func(t *testing.T) {
		inactive := &WashBay{
			MaxVehicleSize: SizeOversized,
			EquipmentTypes: []string{"pressure_washer"},
			Status:         ResourceStatusInactive,
		}
		assert.False(t, inactive.CanServe(SizeCompact, nil))
	})
}

func TestMobileTeam_CoversLocation(t *testing.T) {
	// База в центре Москвы, радиус 10 км
	team := &MobileTeam{
		ID:              1,
		Name:            "Бригада Север",
		BaseLocation:    GeoPoint{Latitude: 55.7558, Longitude: 37.6173},
		ServiceRadiusKm: 10,
		Status:          ResourceStatusActive,
	}

	t.Run("nearby location covered", func(t *testing.T) {
		// ~2 км от базы
		assert.True(t, team.CoversLocation(GeoPoint{Latitude: 55.7700, Longitude: 37.6300}))
	})

	t.Run("base location itself covered", func(t *testing.T) {
		assert.True(t, team.CoversLocation(team.BaseLocation))
	})

	t.Run("distant location not covered", func(t *testing.T) {
		// Санкт-Петербург, ~630 км
		assert.False(t, team.CoversLocation(GeoPoint{Latitude: 59.9343, Longitude: 30.3351}))
	})
}

func TestMobileTeam_CanServe(t *testing.T) {
	team := &MobileTeam{
		ID:              1,
		Name:            "Бригада Юг",
		BaseLocation:    GeoPoint{Latitude: 55.7558, Longitude: 37.6173},
		ServiceRadiusKm: 15,
		EquipmentTypes:  []string{"mobile_washer", "vacuum"},
		Status:          ResourceStatusActive,
	}
	nearby := GeoPoint{Latitude: 55.7600, Longitude: 37.6200}

	assert.True(t, team.CanServe(nearby, []string{"vacuum"}))
	assert.False(t, team.CanServe(nearby, []string{"ceramic_station"}))

	team.Status = ResourceStatusInactive
	assert.False(t, team.CanServe(nearby, nil))
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	moscow := GeoPoint{Latitude: 55.7558, Longitude: 37.6173}
	spb := GeoPoint{Latitude: 59.9343, Longitude: 30.3351}

	distance := moscow.DistanceKm(spb)

	// Расстояние Москва - Санкт-Петербург около 630 км
	assert.InDelta(t, 633, distance, 10)
	assert.Zero(t, moscow.DistanceKm(moscow))
}
