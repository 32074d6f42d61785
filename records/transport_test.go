package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicleLocation(t *testing.T) {
	item := Item{
		"Lat":           52.27349,
		"Lon":           20.954563,
		"Time":          "2023-05-12 11:57:46",
		"Lines":         "213",
		"Brigade":       "2",
		"VehicleNumber": "9471",
	}

	v, err := NewVehicleLocation(item)
	require.NoError(t, err)

	require.NotNil(t, v.Lat)
	assert.Equal(t, 52.27349, *v.Lat)
	assert.Equal(t, "213", v.Lines)
	require.NotNil(t, v.Time)
	assert.Equal(t, time.Date(2023, 5, 12, 11, 57, 46, 0, time.UTC), *v.Time)

	t.Run("fractional seconds are dropped", func(t *testing.T) {
		item["Time"] = "2023-05-12 11:57:46.123456"
		v, err := NewVehicleLocation(item)
		require.NoError(t, err)
		require.NotNil(t, v.Time)
		assert.Equal(t, 46, v.Time.Second())
	})
}

func TestNewTimetableEntry(t *testing.T) {
	item := Item{
		"brygada":  "2",
		"kierunek": "Metro Młociny",
		"trasa":    "TP-MLO",
		"czas":     "05:42:00",
		"symbol_1": nil,
		"symbol_2": nil,
	}

	e, err := NewTimetableEntry(item)
	require.NoError(t, err)

	assert.Equal(t, "Metro Młociny", e.Direction)
	assert.Nil(t, e.Symbol1)

	// Departure times are clock times on the zero date.
	require.NotNil(t, e.Time)
	assert.Equal(t, 5, e.Time.Hour())
	assert.Equal(t, 42, e.Time.Minute())
	assert.Equal(t, 0, e.Time.Year())
}

func TestNewStopInfo(t *testing.T) {
	item := Item{
		"zespol":        "7009",
		"slupek":        "01",
		"nazwa_zespolu": "Marszałkowska",
		"id_ulicy":      "1204",
		"szer_geo":      "52.224536",
		"dlug_geo":      "21.011074",
		"kierunek":      "al. Jerozolimskie",
		"obowiazuje_od": "2023-03-03 00:00:00",
	}

	s, err := NewStopInfo(item)
	require.NoError(t, err)

	assert.Equal(t, "7009", s.SetNumber)
	assert.Equal(t, "01", s.Bar)
	require.NotNil(t, s.Lat)
	assert.Equal(t, 52.224536, *s.Lat)
	require.NotNil(t, s.ValidFrom)
	assert.Equal(t, time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC), *s.ValidFrom)
}

func TestNewCycleStation(t *testing.T) {
	item := Item{
		"STOJAKI":     "20",
		"AKTU_DAN":    "05-Dec-22 01.17.44.543000 PM",
		"OBJECTID":    "6395",
		"LOKALIZACJA": "Rondo Daszyńskiego",
		"ROWERY":      "12",
		"NR_STACJI":   "9600",
	}

	s, err := NewCycleStation(item)
	require.NoError(t, err)

	require.NotNil(t, s.Racks)
	assert.Equal(t, int64(20), *s.Racks)
	require.NotNil(t, s.Bikes)
	assert.Equal(t, int64(12), *s.Bikes)

	require.NotNil(t, s.UpdateDate)
	assert.Equal(t, time.Date(2022, 12, 5, 13, 17, 44, 543000000, time.UTC), *s.UpdateDate)

	t.Run("hours past noon keep the PM meaning", func(t *testing.T) {
		item["AKTU_DAN"] = "05-Dec-22 13.17.44.543000 PM"
		s, err := NewCycleStation(item)
		require.NoError(t, err)
		require.NotNil(t, s.UpdateDate)
		assert.Equal(t, 13, s.UpdateDate.Hour())
	})
}

func TestNewParkingLot(t *testing.T) {
	item := Item{
		"NIEPELNO": "8",
		"MOTORY":   "10",
		"AUTA":     "290",
		"OPIS":     "parking wielopoziomowy",
		"OBJECTID": "3",
		"NAZWA":    "P+R Metro Młociny",
		"AKTU_DAN": "2019-09-30",
	}

	p, err := NewParkingLot(item)
	require.NoError(t, err)
	require.NotNil(t, p.CarPlaces)
	assert.Equal(t, int64(290), *p.CarPlaces)
	assert.Equal(t, "2019-09-30", p.UpdateDate)
}

func TestNewTheater(t *testing.T) {
	item := Item{
		"TEL_FAX":   "22 123 45 67",
		"AKTU_DAN":  "2020-01-01",
		"OBJECTID":  "12",
		"NUMER":     "3",
		"KOD":       "00-077",
		"OPIS":      "Teatr Wielki",
		"ULICA":     "plac Teatralny",
		"DZIELNICA": "Śródmieście",
	}

	th, err := NewTheater(item)
	require.NoError(t, err)
	assert.Equal(t, "Teatr Wielki", th.Description)
	assert.Nil(t, th.Website)
	assert.Nil(t, th.AdministrativeUnit)

	t.Run("optional keys decode when present", func(t *testing.T) {
		item["WWW"] = "https://teatrwielki.pl"
		th, err := NewTheater(item)
		require.NoError(t, err)
		require.NotNil(t, th.Website)
		assert.Equal(t, "https://teatrwielki.pl", *th.Website)
	})
}
