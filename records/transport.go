package records

import (
	"time"

	"github.com/mermaid-go/mermaid/coerce"
)

// VehicleLocation is the live GPS position of one bus or tram.
type VehicleLocation struct {
	Lat           *float64   `json:"lat"`
	Lon           *float64   `json:"lon"`
	Time          *time.Time `json:"time"`
	Lines         string     `json:"lines"`
	Brigade       string     `json:"brigade"`
	VehicleNumber string     `json:"vehicle_number"`
}

// NewVehicleLocation builds a VehicleLocation from one busestrams_get item.
func NewVehicleLocation(item Item) (VehicleLocation, error) {
	d := newItemDecoder("VehicleLocation", item)
	v := VehicleLocation{
		Lat:           d.float("Lat", "lat"),
		Lon:           d.float("Lon", "lon"),
		Time:          d.timestamp(coerce.DateTime, "Time", "time"),
		Lines:         d.str("Lines", "lines"),
		Brigade:       d.str("Brigade", "brigade"),
		VehicleNumber: d.str("VehicleNumber", "vehicle_number"),
	}
	return v, d.err
}

// StopSet names a public transport stop set and its number.
type StopSet struct {
	StopName  string `json:"stop_name"`
	SetNumber string `json:"set_number"`
}

// StopLine is one line calling at a stop.
type StopLine struct {
	LineNumber string `json:"line_number"`
}

// TimetableEntry is one departure of a line from a stop. Time is a clock
// time on the zero date.
type TimetableEntry struct {
	Brigade   string     `json:"brigade"`
	Direction string     `json:"direction"`
	Route     string     `json:"route"`
	Time      *time.Time `json:"time"`
	Symbol1   *string    `json:"symbol_1"`
	Symbol2   *string    `json:"symbol_2"`
}

// NewTimetableEntry builds a TimetableEntry from a key/value timetable row.
func NewTimetableEntry(item Item) (TimetableEntry, error) {
	d := newItemDecoder("TimetableEntry", item)
	e := TimetableEntry{
		Brigade:   d.str("brygada", "brigade"),
		Direction: d.str("kierunek", "direction"),
		Route:     d.str("trasa", "route"),
		Time:      d.timestamp(coerce.ClockTime, "czas", "time"),
		Symbol1:   d.optStr("symbol_1", "symbol_1"),
		Symbol2:   d.optStr("symbol_2", "symbol_2"),
	}
	return e, d.err
}

// StopInfo is the registry entry of one public transport stop bar.
type StopInfo struct {
	SetNumber string     `json:"set_number"`
	Bar       string     `json:"bar"`
	SetName   string     `json:"set_name"`
	StreetID  string     `json:"street_id"`
	Lat       *float64   `json:"lat"`
	Lon       *float64   `json:"lon"`
	Direction string     `json:"direction"`
	ValidFrom *time.Time `json:"valid_from"`
}

// NewStopInfo builds a StopInfo from a key/value dbstore row.
func NewStopInfo(item Item) (StopInfo, error) {
	d := newItemDecoder("StopInfo", item)
	s := StopInfo{
		SetNumber: d.str("zespol", "set_number"),
		Bar:       d.str("slupek", "bar"),
		SetName:   d.str("nazwa_zespolu", "set_name"),
		StreetID:  d.str("id_ulicy", "street_id"),
		Lat:       d.float("szer_geo", "lat"),
		Lon:       d.float("dlug_geo", "lon"),
		Direction: d.str("kierunek", "direction"),
		ValidFrom: d.timestamp(coerce.DateTime, "obowiazuje_od", "valid_from"),
	}
	return s, d.err
}

// CycleTrack is one segment of the cycling network.
type CycleTrack struct {
	Location    string `json:"location"`
	RouteType   string `json:"route_type"`
	District    string `json:"district"`
	ObjectID    string `json:"object_id"`
	SurfaceType string `json:"surface_type"`
}

// NewCycleTrack builds a CycleTrack from one WFS feature.
func NewCycleTrack(item Item) (CycleTrack, error) {
	d := newItemDecoder("CycleTrack", item)
	t := CycleTrack{
		Location:    d.str("LOKALIZ", "location"),
		RouteType:   d.str("TYP_TRASY", "route_type"),
		District:    d.str("DZIELNICA", "district"),
		ObjectID:    d.str("OBJECTID", "object_id"),
		SurfaceType: d.str("TYP_NAW", "surface_type"),
	}
	return t, d.err
}

// CycleStation is one public bike station with its live rack/bike counts.
type CycleStation struct {
	Racks         *int64     `json:"racks"`
	UpdateDate    *time.Time `json:"update_date"`
	ObjectID      string     `json:"object_id"`
	Location      string     `json:"location"`
	Bikes         *int64     `json:"bikes"`
	StationNumber string     `json:"station_number"`
}

// NewCycleStation builds a CycleStation from one WFS feature.
func NewCycleStation(item Item) (CycleStation, error) {
	d := newItemDecoder("CycleStation", item)
	s := CycleStation{
		Racks:         d.integer("STOJAKI", "racks"),
		UpdateDate:    d.timestamp(coerce.DateTimeOracle, "AKTU_DAN", "update_date"),
		ObjectID:      d.str("OBJECTID", "object_id"),
		Location:      d.str("LOKALIZACJA", "location"),
		Bikes:         d.integer("ROWERY", "bikes"),
		StationNumber: d.str("NR_STACJI", "station_number"),
	}
	return s, d.err
}

// ParkingLot is one park-and-ride parking lot.
type ParkingLot struct {
	DisabledPlaces   *int64 `json:"disabled_places"`
	MotorcyclePlaces *int64 `json:"motorcycle_places"`
	CarPlaces        *int64 `json:"car_places"`
	Description      string `json:"description"`
	ObjectID         string `json:"object_id"`
	Name             string `json:"name"`
	UpdateDate       string `json:"update_date"`
}

// NewParkingLot builds a ParkingLot from one WFS feature.
func NewParkingLot(item Item) (ParkingLot, error) {
	d := newItemDecoder("ParkingLot", item)
	p := ParkingLot{
		DisabledPlaces:   d.integer("NIEPELNO", "disabled_places"),
		MotorcyclePlaces: d.integer("MOTORY", "motorcycle_places"),
		CarPlaces:        d.integer("AUTA", "car_places"),
		Description:      d.str("OPIS", "description"),
		ObjectID:         d.str("OBJECTID", "object_id"),
		Name:             d.str("NAZWA", "name"),
		UpdateDate:       d.str("AKTU_DAN", "update_date"),
	}
	return p, d.err
}

// SubwayEntrance is one metro entrance. The dataset exposes nothing but
// the object id.
type SubwayEntrance struct {
	ObjectID string `json:"object_id"`
}

// NewSubwayEntrance builds a SubwayEntrance from one WFS feature.
func NewSubwayEntrance(item Item) (SubwayEntrance, error) {
	d := newItemDecoder("SubwayEntrance", item)
	s := SubwayEntrance{
		ObjectID: d.str("OBJECTID", "object_id"),
	}
	return s, d.err
}
