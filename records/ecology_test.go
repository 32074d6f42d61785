package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTree(t *testing.T) {
	item := Item{
		"x_wgs84":      21.04549059,
		"y_wgs84":      52.21965322,
		"x_pl2000":     "7503551.5",
		"y_pl2000":     "5785931.9",
		"numer_inw":    "01954",
		"dzielnica":    "Praga-Południe",
		"jednostka":    "ZZW - Wydział Utrzymania Zieleni",
		"miasto":       "Warszawa",
		"adres":        "al. Waszyngtona",
		"numer_adres":  "2/4",
		"lokalizacja":  "pas zieleni",
		"gatunek":      "lipa drobnolistna",
		"gatunek_1":    "Tilia cordata",
		"data_wyk_pom": "20210412",
		"wiek_w_dni":   "14600",
		"wysokosc":     "12,5",
		"pnie_obwod":   "180",
		"srednica_k":   "8",
		"stan_zdrowia": "dobry",
	}

	tree, err := NewTree(item)
	require.NoError(t, err)

	require.NotNil(t, tree.XWGS84)
	assert.Equal(t, 21.04549059, *tree.XWGS84)
	require.NotNil(t, tree.XPL2000)
	assert.Equal(t, 7503551.5, *tree.XPL2000)
	assert.Equal(t, "lipa drobnolistna", tree.SpeciesPolish)
	assert.Equal(t, "Tilia cordata", tree.SpeciesLatin)

	require.NotNil(t, tree.MeasurementDate)
	assert.Equal(t, time.Date(2021, 4, 12, 0, 0, 0, 0, time.UTC), *tree.MeasurementDate)

	require.NotNil(t, tree.Age)
	assert.Equal(t, int64(14600), *tree.Age)

	// Comma decimal separator.
	require.NotNil(t, tree.Height)
	assert.Equal(t, 12.5, *tree.Height)

	t.Run("missing coordinate fails construction", func(t *testing.T) {
		broken := Item{}
		for k, v := range item {
			broken[k] = v
		}
		delete(broken, "x_wgs84")

		_, err := NewTree(broken)
		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "Tree", cerr.Variant)
		assert.Equal(t, "x_wgs84", cerr.Field)
	})

	t.Run("empty values decode to nil", func(t *testing.T) {
		blank := Item{}
		for k, v := range item {
			blank[k] = v
		}
		blank["wiek_w_dni"] = ""
		blank["data_wyk_pom"] = ""

		tree, err := NewTree(blank)
		require.NoError(t, err)
		assert.Nil(t, tree.Age)
		assert.Nil(t, tree.MeasurementDate)
	})
}

func TestNewShrub(t *testing.T) {
	// The shrub dataset names its PL-2000 columns "x" and "y".
	item := Item{
		"x_wgs84":      21.0, "y_wgs84": 52.2,
		"x": "7500000.0", "y": "5780000.0",
		"numer_inw": "S-11", "dzielnica": "Wola",
		"jednostka": "ZZW", "miasto": "Warszawa",
		"adres": "Górczewska", "lokalizacja": "skwer",
		"gatunek": "lilak pospolity", "gatunek1": "Syringa vulgaris",
		"data_wyk_pom": "20200305", "wiek_w_dni": "3650",
		"stan_zdrowia": "dobry",
	}

	s, err := NewShrub(item)
	require.NoError(t, err)
	require.NotNil(t, s.XPL2000)
	assert.Equal(t, 7500000.0, *s.XPL2000)
	assert.Equal(t, "Syringa vulgaris", s.SpeciesLatin)
}

func TestNewForest(t *testing.T) {
	item := Item{
		"x_wgs84": 21.1, "y_wgs84": 52.3, "x_pl2000": "7510000", "y_pl2000": "5790000",
		"id": "17", "partid": "1", "dzielnica": "Białołęka",
		"obwód": "Białołęka Dworska", "osiedle": "Choszczówka",
		"nr_oddz": "5", "poddz": "c", "powierzchnia": "2,64",
		"stl": "Bśw", "powierzchnia1": "drzewostan", "gat_panujacy": "sosna",
		"udział": "0,8", "wiek": "95", "bonitacja": "II", "zadrzewienie": "0,7",
		"zwarcie": "umiarkowane", "zmieszanie": "jednostkowe",
		"podrost": "brak", "podszyt": "czeremcha",
		"typ_planu": "UPUL", "planu": "tak", "obowiazywanie": "2017-2026",
		"shape_area": "26400.5", "shape_len": "780.2",
	}

	f, err := NewForest(item)
	require.NoError(t, err)
	assert.Equal(t, "Białołęka Dworska", f.ForestDistrict)
	require.NotNil(t, f.Area)
	assert.Equal(t, 2.64, *f.Area)
	require.NotNil(t, f.SurfaceShare)
	assert.Equal(t, 0.8, *f.SurfaceShare)
	require.NotNil(t, f.Age)
	assert.Equal(t, int64(95), *f.Age)
}

func TestNewMunicipalWaste(t *testing.T) {
	item := Item{
		"Identyfikator": "42",
		"Nazwa":         "butelka PET",
		"Synonim":       "butelka plastikowa",
		"Typ":           "metale i tworzywa sztuczne",
		"Opis":          "odkręć i zgnieć",
		"Tak":           "butelki po napojach",
		"Nie":           "butelki po oleju",
	}

	w, err := NewMunicipalWaste(item)
	require.NoError(t, err)
	require.NotNil(t, w.ID)
	assert.Equal(t, int64(42), *w.ID)
	assert.Equal(t, "metale i tworzywa sztuczne", w.WasteType)
}
