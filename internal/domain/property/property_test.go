package property

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func residentialSpec(t *testing.T) valueobject.PropertySpec {
	t.Helper()
	spec, err := valueobject.NewPropertySpec(decimal.NewFromInt(120), intPtr(3), intPtr(2), 1, nil)
	require.NoError(t, err)
	return spec
}

func landSpec(t *testing.T) valueobject.PropertySpec {
	t.Helper()
	spec, err := valueobject.NewPropertySpec(decimal.NewFromInt(500), nil, nil, 0, nil)
	require.NoError(t, err)
	return spec
}

func limaLocation(t *testing.T) valueobject.GeoLocation {
	t.Helper()
	loc, err := valueobject.NewGeoLocation(-12.0464, -77.0428, "Av. Arequipa 1234", "Lince", valueobject.PeruBounds)
	require.NoError(t, err)
	return loc
}

func gallery(t *testing.T, urls ...string) valueobject.PhotoGallery {
	t.Helper()
	g, err := valueobject.NewPhotoGallery(urls, valueobject.PropertyMaxPhotos)
	require.NoError(t, err)
	return g
}

func TestPropertyType(t *testing.T) {
	assert.True(t, TypeHouse.IsResidential())
	assert.True(t, TypeApartment.RequiresRoomCounts())
	assert.False(t, TypeLand.IsResidential())
	assert.False(t, TypeOffice.RequiresRoomCounts())
	assert.False(t, Type("castle").IsValid())

	assert.Equal(t, "Departamento", TypeApartment.Label())
	assert.Equal(t, "Terreno", TypeLand.Label())
	assert.Equal(t, "Venta", OperationSale.Label())
	assert.Equal(t, "Alquiler", OperationRental.Label())
}

func TestNewProperty(t *testing.T) {
	t.Run("creates available residential property", func(t *testing.T) {
		prop, err := NewProperty(NewPropertyID(), TypeHouse, OperationSale,
			residentialSpec(t), limaLocation(t), gallery(t, "https://cdn.example.com/casa.jpg"), now)
		require.NoError(t, err)

		assert.True(t, prop.IsAvailable())
		assert.Equal(t, TypeHouse, prop.PropertyType())
		assert.Equal(t, OperationSale, prop.OperationType())
	})

	t.Run("non-residential types must not declare room counts", func(t *testing.T) {
		_, err := NewProperty(NewPropertyID(), TypeLand, OperationSale,
			residentialSpec(t), limaLocation(t), gallery(t), now)
		require.Error(t, err)

		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Violations[0], "room counts")
	})

	t.Run("rejects invalid type and operation together", func(t *testing.T) {
		_, err := NewProperty(NewPropertyID(), Type("castle"), OperationType("barter"),
			landSpec(t), limaLocation(t), gallery(t), now)
		require.Error(t, err)

		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 2)
	})
}

func TestValidateForPublication(t *testing.T) {
	t.Run("available property with photos and room counts passes", func(t *testing.T) {
		prop, err := NewProperty(NewPropertyID(), TypeApartment, OperationRental,
			residentialSpec(t), limaLocation(t), gallery(t, "https://cdn.example.com/a.jpg"), now)
		require.NoError(t, err)
		assert.NoError(t, prop.ValidateForPublication())
	})

	t.Run("land without room counts passes", func(t *testing.T) {
		prop, err := NewProperty(NewPropertyID(), TypeLand, OperationSale,
			landSpec(t), limaLocation(t), gallery(t, "https://cdn.example.com/lote.jpg"), now)
		require.NoError(t, err)
		assert.NoError(t, prop.ValidateForPublication())
	})

	t.Run("residential property without room counts fails", func(t *testing.T) {
		prop, err := NewProperty(NewPropertyID(), TypeHouse, OperationSale,
			landSpec(t), limaLocation(t), gallery(t, "https://cdn.example.com/a.jpg"), now)
		require.NoError(t, err)

		err = prop.ValidateForPublication()
		require.Error(t, err)
		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Violations[0], "bedroom and bathroom counts")
	})

	t.Run("collects unavailability and missing photos together", func(t *testing.T) {
		prop, err := NewProperty(NewPropertyID(), TypeOffice, OperationRental,
			landSpec(t), limaLocation(t), gallery(t), now)
		require.NoError(t, err)
		prop = prop.MarkUnavailable(now)

		err = prop.ValidateForPublication()
		require.Error(t, err)
		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 2)
	})
}

func TestPropertyTransitions(t *testing.T) {
	prop, err := NewProperty(NewPropertyID(), TypeApartment, OperationSale,
		residentialSpec(t), limaLocation(t), gallery(t, "https://cdn.example.com/a.jpg"), now)
	require.NoError(t, err)

	t.Run("availability toggles return new instances", func(t *testing.T) {
		later := now.Add(time.Hour)
		unavailable := prop.MarkUnavailable(later)

		assert.True(t, prop.IsAvailable())
		assert.False(t, unavailable.IsAvailable())
		assert.Equal(t, later, unavailable.UpdatedAt())

		assert.True(t, unavailable.MarkAvailable(later).IsAvailable())
	})

	t.Run("with-updates preserve the rest of the state", func(t *testing.T) {
		newMedia := gallery(t, "https://cdn.example.com/b.jpg")
		updated, err := prop.WithMedia(newMedia, now.Add(time.Hour))
		require.NoError(t, err)

		assert.True(t, updated.Media().Equals(newMedia))
		assert.Equal(t, prop.ID(), updated.ID())
		assert.True(t, updated.Spec().Equals(prop.Spec()))
	})

	t.Run("updating to an invalid spec fails", func(t *testing.T) {
		_, err := prop.WithSpec(landSpec(t), now)
		assert.Error(t, err)
	})
}

func TestCreatePropertyWithValidation(t *testing.T) {
	svc := NewService(valueobject.PeruBounds)

	validInput := func() CreatePropertyInput {
		return CreatePropertyInput{
			PropertyType:  TypeApartment,
			OperationType: OperationSale,
			AreaM2:        decimal.NewFromInt(80),
			Bedrooms:      intPtr(2),
			Bathrooms:     intPtr(1),
			Parking:       1,
			Latitude:      -12.1211,
			Longitude:     -77.0297,
			Address:       "Av. Larco 345",
			District:      "Miraflores",
			PhotoURLs:     []string{"https://cdn.example.com/a.jpg"},
			Now:           now,
		}
	}

	t.Run("builds the property from raw input", func(t *testing.T) {
		prop, err := svc.CreatePropertyWithValidation(validInput())
		require.NoError(t, err)

		assert.False(t, prop.ID().IsZero())
		assert.Equal(t, "Miraflores", prop.Location().District())
		assert.Equal(t, 1, prop.Media().Count())
	})

	t.Run("aggregates violations across all value objects", func(t *testing.T) {
		input := validInput()
		input.AreaM2 = decimal.Zero
		input.Address = ""
		input.PhotoURLs = []string{"ftp://x/a.jpg"}

		_, err := svc.CreatePropertyWithValidation(input)
		require.Error(t, err)

		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 3)
		assert.Equal(t, "Property", ve.Entity)
	})

	t.Run("rejects coordinates outside the service region", func(t *testing.T) {
		input := validInput()
		input.Latitude = 40.4168
		input.Longitude = -3.7038

		_, err := svc.CreatePropertyWithValidation(input)
		assert.Error(t, err)
	})

	t.Run("replaces photos through the service", func(t *testing.T) {
		prop, err := svc.CreatePropertyWithValidation(validInput())
		require.NoError(t, err)

		updated, err := svc.UpdatePhotos(prop, []string{"https://cdn.example.com/new.webp"}, now)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/new.webp", updated.Media().Primary())
	})
}
