package records

import (
	"fmt"
	"time"

	"github.com/mermaid-go/mermaid/coerce"
)

// AirIndex is the Polish Air Quality Index verdict attached to a station
// or to a single measurement. Per-measurement entries usually carry only
// the name.
type AirIndex struct {
	Name            *string `json:"name"`
	Recommendations *string `json:"recommendations"`
}

// AirStationAddress locates an air quality station.
type AirStationAddress struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	ZipCode  string `json:"zip_code"`
	District string `json:"district"`
	Commune  string `json:"commune"`
}

// AirData is one pollutant measurement at a station.
type AirData struct {
	Index     AirIndex   `json:"ijp"`
	ParamName string     `json:"param_name"`
	ParamCode string     `json:"param_code"`
	Value     *float64   `json:"value"`
	Time      *time.Time `json:"time"`
	Unit      string     `json:"unit"`
}

// AirQuality is the full reading of one air quality station.
type AirQuality struct {
	Index       AirIndex          `json:"ijp"`
	DataSource  string            `json:"data_source"`
	Name        string            `json:"name"`
	StationType string            `json:"station_type"`
	Lon         *float64          `json:"lon"`
	Lat         *float64          `json:"lat"`
	Owner       string            `json:"owner"`
	Station     string            `json:"station"`
	Address     AirStationAddress `json:"address"`
	Data        []AirData         `json:"data"`
}

func decodeAirIndex(d *itemDecoder) AirIndex {
	return AirIndex{
		Name:            d.optStr("name", "name"),
		Recommendations: d.optStr("recommendations", "recommendations"),
	}
}

// NewAirQuality builds an AirQuality from one raw air_sensors_get item,
// descending into the nested index, address and measurement objects.
func NewAirQuality(item Item) (AirQuality, error) {
	d := newItemDecoder("AirQuality", item)

	ijp := d.object("ijp", "ijp")
	index := decodeAirIndex(ijp)
	d.adopt(ijp)

	addr := d.object("address", "address")
	address := AirStationAddress{
		City:     addr.str("city", "city"),
		Street:   addr.str("street", "street"),
		ZipCode:  addr.str("zip_code", "zip_code"),
		District: addr.str("district", "district"),
		Commune:  addr.str("commune", "commune"),
	}
	d.adopt(addr)

	q := AirQuality{
		Index:       index,
		DataSource:  d.str("data_source", "data_source"),
		Name:        d.str("name", "name"),
		StationType: d.str("station_type", "station_type"),
		Lon:         d.float("lon", "lon"),
		Lat:         d.float("lat", "lat"),
		Owner:       d.str("owner", "owner"),
		Station:     d.str("station", "station"),
		Address:     address,
	}

	for _, raw := range d.list("data", "data") {
		m, ok := raw.(map[string]any)
		if !ok {
			d.fail("data", fmt.Errorf("expected a nested object, got %T", raw))
			break
		}
		md := newItemDecoder("AirQuality.data", Item(m))
		mijp := md.object("ijp", "ijp")
		entry := AirData{
			Index:     decodeAirIndex(mijp),
			ParamName: md.str("param_name", "param_name"),
			ParamCode: md.str("param_code", "param_code"),
			Value:     md.float("value", "value"),
			Time:      md.timestamp(coerce.DateTime, "time", "time"),
			Unit:      md.str("unit", "unit"),
		}
		md.adopt(mijp)
		d.adopt(md)
		q.Data = append(q.Data, entry)
	}

	return q, d.err
}
