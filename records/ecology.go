package records

import (
	"time"

	"github.com/mermaid-go/mermaid/coerce"
)

// Tree is one entry of the individual-tree inventory. Coordinates come in
// both WGS84 (EPSG:4326) and PL-2000 (EPSG:2178); age is in days.
type Tree struct {
	XWGS84             *float64   `json:"x_wgs84"`
	YWGS84             *float64   `json:"y_wgs84"`
	XPL2000            *float64   `json:"x_pl2000"`
	YPL2000            *float64   `json:"y_pl2000"`
	InventoryNumber    string     `json:"inventory_number"`
	District           string     `json:"district"`
	AdministrativeUnit string     `json:"administrative_unit"`
	City               string     `json:"city"`
	Address            string     `json:"address"`
	HouseNumber        string     `json:"house_number"`
	Location           string     `json:"location"`
	SpeciesPolish      string     `json:"species_polish"`
	SpeciesLatin       string     `json:"species_latin"`
	MeasurementDate    *time.Time `json:"measurement_date"`
	Age                *int64     `json:"age"`
	Height             *float64   `json:"height"`
	TrunkCircumference *float64   `json:"trunk_circumference"`
	CrownDiameter      *float64   `json:"crown_diameter"`
	Health             string     `json:"health"`
}

// NewTree builds a Tree from a raw datastore item.
func NewTree(item Item) (Tree, error) {
	d := newItemDecoder("Tree", item)
	t := Tree{
		XWGS84:             d.float("x_wgs84", "x_wgs84"),
		YWGS84:             d.float("y_wgs84", "y_wgs84"),
		XPL2000:            d.float("x_pl2000", "x_pl2000"),
		YPL2000:            d.float("y_pl2000", "y_pl2000"),
		InventoryNumber:    d.str("numer_inw", "inventory_number"),
		District:           d.str("dzielnica", "district"),
		AdministrativeUnit: d.str("jednostka", "administrative_unit"),
		City:               d.str("miasto", "city"),
		Address:            d.str("adres", "address"),
		HouseNumber:        d.str("numer_adres", "house_number"),
		Location:           d.str("lokalizacja", "location"),
		SpeciesPolish:      d.str("gatunek", "species_polish"),
		SpeciesLatin:       d.str("gatunek_1", "species_latin"),
		MeasurementDate:    d.timestamp(coerce.Date, "data_wyk_pom", "measurement_date"),
		Age:                d.integer("wiek_w_dni", "age"),
		Height:             d.float("wysokosc", "height"),
		TrunkCircumference: d.float("pnie_obwod", "trunk_circumference"),
		CrownDiameter:      d.float("srednica_k", "crown_diameter"),
		Health:             d.str("stan_zdrowia", "health"),
	}
	return t, d.err
}

// TreesGroup is a surveyed group of trees sharing one outline.
type TreesGroup struct {
	XWGS84             *float64   `json:"x_wgs84"`
	YWGS84             *float64   `json:"y_wgs84"`
	XPL2000            *float64   `json:"x_pl2000"`
	YPL2000            *float64   `json:"y_pl2000"`
	InventoryNumber    string     `json:"inventory_number"`
	OutlineID          *int64     `json:"outline_id"`
	OutlinePartID      *int64     `json:"outline_part_id"`
	District           string     `json:"district"`
	AdministrativeUnit string     `json:"administrative_unit"`
	City               string     `json:"city"`
	Address            string     `json:"address"`
	Location           string     `json:"location"`
	Species            string     `json:"species"`
	MeasurementDate    *time.Time `json:"measurement_date"`
	Health             string     `json:"health"`
}

// NewTreesGroup builds a TreesGroup from a raw datastore item.
func NewTreesGroup(item Item) (TreesGroup, error) {
	d := newItemDecoder("TreesGroup", item)
	g := TreesGroup{
		XWGS84:             d.float("x_wgs84", "x_wgs84"),
		YWGS84:             d.float("y_wgs84", "y_wgs84"),
		XPL2000:            d.float("x_pl2000", "x_pl2000"),
		YPL2000:            d.float("y_pl2000", "y_pl2000"),
		InventoryNumber:    d.str("numer_inw", "inventory_number"),
		OutlineID:          d.integer("id_obrysu", "outline_id"),
		OutlinePartID:      d.integer("partid_obrysu", "outline_part_id"),
		District:           d.str("dzielnica", "district"),
		AdministrativeUnit: d.str("jednostka", "administrative_unit"),
		City:               d.str("miasto", "city"),
		Address:            d.str("adres", "address"),
		Location:           d.str("lokalizacja", "location"),
		Species:            d.str("gatunki", "species"),
		MeasurementDate:    d.timestamp(coerce.Date, "data_wyk_pom", "measurement_date"),
		Health:             d.str("stan_zdrowia", "health"),
	}
	return g, d.err
}

// Shrub is one entry of the individual-shrub inventory. Note the source
// keys for PL-2000 coordinates differ from every other green dataset.
type Shrub struct {
	XWGS84             *float64   `json:"x_wgs84"`
	YWGS84             *float64   `json:"y_wgs84"`
	XPL2000            *float64   `json:"x_pl2000"`
	YPL2000            *float64   `json:"y_pl2000"`
	InventoryNumber    string     `json:"inventory_number"`
	District           string     `json:"district"`
	AdministrativeUnit string     `json:"administrative_unit"`
	City               string     `json:"city"`
	Address            string     `json:"address"`
	Location           string     `json:"location"`
	SpeciesPolish      string     `json:"species_polish"`
	SpeciesLatin       string     `json:"species_latin"`
	MeasurementDate    *time.Time `json:"measurement_date"`
	Age                *int64     `json:"age"`
	Health             string     `json:"health"`
}

// NewShrub builds a Shrub from a raw datastore item.
func NewShrub(item Item) (Shrub, error) {
	d := newItemDecoder("Shrub", item)
	s := Shrub{
		XWGS84:             d.float("x_wgs84", "x_wgs84"),
		YWGS84:             d.float("y_wgs84", "y_wgs84"),
		XPL2000:            d.float("x", "x_pl2000"),
		YPL2000:            d.float("y", "y_pl2000"),
		InventoryNumber:    d.str("numer_inw", "inventory_number"),
		District:           d.str("dzielnica", "district"),
		AdministrativeUnit: d.str("jednostka", "administrative_unit"),
		City:               d.str("miasto", "city"),
		Address:            d.str("adres", "address"),
		Location:           d.str("lokalizacja", "location"),
		SpeciesPolish:      d.str("gatunek", "species_polish"),
		SpeciesLatin:       d.str("gatunek1", "species_latin"),
		MeasurementDate:    d.timestamp(coerce.Date, "data_wyk_pom", "measurement_date"),
		Age:                d.integer("wiek_w_dni", "age"),
		Health:             d.str("stan_zdrowia", "health"),
	}
	return s, d.err
}

// ShrubsGroup is a surveyed group of shrubs sharing one outline. Area and
// height arrive with comma decimal separators.
type ShrubsGroup struct {
	XWGS84             *float64   `json:"x_wgs84"`
	YWGS84             *float64   `json:"y_wgs84"`
	XPL2000            *float64   `json:"x_pl2000"`
	YPL2000            *float64   `json:"y_pl2000"`
	OutlineID          *int64     `json:"outline_id"`
	OutlinePartID      *int64     `json:"outline_part_id"`
	InventoryNumber    string     `json:"inventory_number"`
	District           string     `json:"district"`
	AdministrativeUnit string     `json:"administrative_unit"`
	City               string     `json:"city"`
	Address            string     `json:"address"`
	Location           string     `json:"location"`
	Species            string     `json:"species"`
	MeasurementDate    *time.Time `json:"measurement_date"`
	Age                *int64     `json:"age"`
	Area               *float64   `json:"area"`
	Height             *float64   `json:"height"`
	Health             string     `json:"health"`
}

// NewShrubsGroup builds a ShrubsGroup from a raw datastore item.
func NewShrubsGroup(item Item) (ShrubsGroup, error) {
	d := newItemDecoder("ShrubsGroup", item)
	g := ShrubsGroup{
		XWGS84:             d.float("x_wgs84", "x_wgs84"),
		YWGS84:             d.float("y_wgs84", "y_wgs84"),
		XPL2000:            d.float("x_pl2000", "x_pl2000"),
		YPL2000:            d.float("y_pl2000", "y_pl2000"),
		OutlineID:          d.integer("id_obrysu", "outline_id"),
		OutlinePartID:      d.integer("partid_obrysu", "outline_part_id"),
		InventoryNumber:    d.str("numer_inw", "inventory_number"),
		District:           d.str("dzielnica", "district"),
		AdministrativeUnit: d.str("jednostka", "administrative_unit"),
		City:               d.str("miasto", "city"),
		Address:            d.str("adres", "address"),
		Location:           d.str("lokalizacja", "location"),
		Species:            d.str("gatunki", "species"),
		MeasurementDate:    d.timestamp(coerce.Date, "data_wyk_pom", "measurement_date"),
		Age:                d.integer("wiek_w_dni", "age"),
		Area:               d.float("powierzchnia", "area"),
		Height:             d.float("wysokosc", "height"),
		Health:             d.str("stan_zdrowia", "health"),
	}
	return g, d.err
}

// Forest is one division of the municipal forest registry.
type Forest struct {
	XWGS84          *float64 `json:"x_wgs84"`
	YWGS84          *float64 `json:"y_wgs84"`
	XPL2000         *float64 `json:"x_pl2000"`
	YPL2000         *float64 `json:"y_pl2000"`
	ID              *int64   `json:"id"`
	PartID          *int64   `json:"part_id"`
	District        string   `json:"district"`
	ForestDistrict  string   `json:"forest_district"`
	Estate          string   `json:"estate"`
	UnitNumber      string   `json:"unit_number"`
	SubUnitNumber   string   `json:"sub_unit_number"`
	Area            *float64 `json:"area"`
	HabitatType     string   `json:"habitat_type"`
	EcosystemLayer  string   `json:"ecosystem_layer"`
	DominantSpecies string   `json:"dominant_species"`
	SurfaceShare    *float64 `json:"surface_share"`
	Age             *int64   `json:"age"`
	Bonitation      string   `json:"bonitation"`
	Woodlot         *float64 `json:"woodlot"`
	Density         string   `json:"density"`
	Mixing          string   `json:"mixing"`
	Sapling         string   `json:"sapling"`
	Underbrush      string   `json:"underbrush"`
	PlanType        string   `json:"plan_type"`
	Plan            string   `json:"plan"`
	PlanDuration    string   `json:"plan_duration"`
	ShapeArea       *float64 `json:"shape_area"`
	ShapeLen        *float64 `json:"shape_len"`
}

// NewForest builds a Forest from a raw datastore item.
func NewForest(item Item) (Forest, error) {
	d := newItemDecoder("Forest", item)
	f := Forest{
		XWGS84:          d.float("x_wgs84", "x_wgs84"),
		YWGS84:          d.float("y_wgs84", "y_wgs84"),
		XPL2000:         d.float("x_pl2000", "x_pl2000"),
		YPL2000:         d.float("y_pl2000", "y_pl2000"),
		ID:              d.integer("id", "id"),
		PartID:          d.integer("partid", "part_id"),
		District:        d.str("dzielnica", "district"),
		ForestDistrict:  d.str("obwód", "forest_district"),
		Estate:          d.str("osiedle", "estate"),
		UnitNumber:      d.str("nr_oddz", "unit_number"),
		SubUnitNumber:   d.str("poddz", "sub_unit_number"),
		Area:            d.float("powierzchnia", "area"),
		HabitatType:     d.str("stl", "habitat_type"),
		EcosystemLayer:  d.str("powierzchnia1", "ecosystem_layer"),
		DominantSpecies: d.str("gat_panujacy", "dominant_species"),
		SurfaceShare:    d.float("udział", "surface_share"),
		Age:             d.integer("wiek", "age"),
		Bonitation:      d.str("bonitacja", "bonitation"),
		Woodlot:         d.float("zadrzewienie", "woodlot"),
		Density:         d.str("zwarcie", "density"),
		Mixing:          d.str("zmieszanie", "mixing"),
		Sapling:         d.str("podrost", "sapling"),
		Underbrush:      d.str("podszyt", "underbrush"),
		PlanType:        d.str("typ_planu", "plan_type"),
		Plan:            d.str("planu", "plan"),
		PlanDuration:    d.str("obowiazywanie", "plan_duration"),
		ShapeArea:       d.float("shape_area", "shape_area"),
		ShapeLen:        d.float("shape_len", "shape_len"),
	}
	return f, d.err
}

// MunicipalWaste is one entry of the waste-segregation dictionary: a waste
// name with its classification and counter-examples.
type MunicipalWaste struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Synonym     string `json:"synonym"`
	WasteType   string `json:"waste_type"`
	Description string `json:"description"`
	ExampleYes  string `json:"example_yes"`
	ExampleNo   string `json:"example_no"`
}

// NewMunicipalWaste builds a MunicipalWaste from a raw datastore item.
func NewMunicipalWaste(item Item) (MunicipalWaste, error) {
	d := newItemDecoder("MunicipalWaste", item)
	w := MunicipalWaste{
		ID:          d.integer("Identyfikator", "id"),
		Name:        d.str("Nazwa", "name"),
		Synonym:     d.str("Synonim", "synonym"),
		WasteType:   d.str("Typ", "waste_type"),
		Description: d.str("Opis", "description"),
		ExampleYes:  d.str("Tak", "example_yes"),
		ExampleNo:   d.str("Nie", "example_no"),
	}
	return w, d.err
}
