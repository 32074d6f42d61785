package records

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// measurement is a minimal variant used to exercise the decoder and the
// structural conversions without dragging a full dataset schema in.
type measurement struct {
	ID     string   `json:"id"`
	Value  *float64 `json:"value"`
	Active *bool    `json:"status"`
}

func newMeasurement(item Item) (measurement, error) {
	d := newItemDecoder("measurement", item)
	m := measurement{
		ID:     d.str("id", "id"),
		Value:  d.float("value", "value"),
		Active: d.boolean("status", "status"),
	}
	return m, d.err
}

func TestMeasurementConstruction(t *testing.T) {
	t.Run("coerces every field", func(t *testing.T) {
		m, err := newMeasurement(Item{"id": "1", "value": "23.5", "status": "TAK"})
		require.NoError(t, err)

		assert.Equal(t, "1", m.ID)
		require.NotNil(t, m.Value)
		assert.Equal(t, 23.5, *m.Value)
		require.NotNil(t, m.Active)
		assert.True(t, *m.Active)
	})

	t.Run("missing key names the destination field", func(t *testing.T) {
		_, err := newMeasurement(Item{"id": "1", "status": "TAK"})
		require.Error(t, err)

		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "measurement", cerr.Variant)
		assert.Equal(t, "value", cerr.Field)
		assert.Nil(t, cerr.Err)
	})

	t.Run("coercion failure carries the cause", func(t *testing.T) {
		_, err := newMeasurement(Item{"id": "1", "value": "not a number", "status": "TAK"})
		require.Error(t, err)

		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "value", cerr.Field)
		assert.Error(t, cerr.Err)
	})

	t.Run("empty value decodes to nil", func(t *testing.T) {
		m, err := newMeasurement(Item{"id": "1", "value": "", "status": "NIE"})
		require.NoError(t, err)
		assert.Nil(t, m.Value)
	})
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"id", "value", "status"}, Fields(measurement{}))

	t.Run("accepts a pointer", func(t *testing.T) {
		assert.Equal(t, []string{"id", "value", "status"}, Fields(&measurement{}))
	})

	t.Run("nested record fields keep their own names", func(t *testing.T) {
		assert.Equal(t, []string{"geometry", "properties"}, Fields(Defibrillator{}))
	})
}

func TestToMap(t *testing.T) {
	value := 23.5
	active := true
	m := measurement{ID: "1", Value: &value, Active: &active}

	got := ToMap(m)
	assert.Equal(t, map[string]any{"id": "1", "value": 23.5, "status": true}, got)

	t.Run("key set equals Fields", func(t *testing.T) {
		fields := Fields(m)
		assert.Len(t, got, len(fields))
		for _, name := range fields {
			assert.Contains(t, got, name)
		}
	})

	t.Run("nil pointer becomes nil value", func(t *testing.T) {
		got := ToMap(measurement{ID: "2"})
		assert.Equal(t, map[string]any{"id": "2", "value": nil, "status": nil}, got)
	})

	t.Run("nested records become nested maps", func(t *testing.T) {
		d := Defibrillator{
			Geometry: DefibrillatorGeometry{
				MapType:     "Point",
				Coordinates: []string{"21.0", "52.2"},
			},
		}
		got := ToMap(d)
		geometry, ok := got["geometry"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Point", geometry["map_type"])
		assert.Equal(t, []any{"21.0", "52.2"}, geometry["coordinates"])
	})
}

func TestToTuple(t *testing.T) {
	value := 23.5
	active := true
	m := measurement{ID: "1", Value: &value, Active: &active}

	assert.Equal(t, []any{"1", 23.5, true}, ToTuple(m))

	t.Run("order follows declaration", func(t *testing.T) {
		fields := Fields(m)
		tuple := ToTuple(m)
		require.Len(t, tuple, len(fields))
		assert.Equal(t, "id", fields[0])
		assert.Equal(t, "1", tuple[0])
	})

	t.Run("nested records become nested tuples", func(t *testing.T) {
		d := Defibrillator{
			Geometry: DefibrillatorGeometry{MapType: "Point", Coordinates: []string{"21.0"}},
		}
		tuple := ToTuple(d)
		require.Len(t, tuple, 2)
		assert.Equal(t, []any{"Point", []any{"21.0"}}, tuple[0])
	})
}

func TestToFlatMap(t *testing.T) {
	t.Run("scalar record is unchanged", func(t *testing.T) {
		value := 23.5
		m := measurement{ID: "1", Value: &value}
		got := ToFlatMap(m)
		assert.Equal(t, map[string]any{"id": "1", "value": 23.5, "status": nil}, got)
	})

	t.Run("nested keys join with underscores", func(t *testing.T) {
		d := Defibrillator{
			Geometry: DefibrillatorGeometry{
				MapType:     "Point",
				Coordinates: []string{"21.0", "52.2"},
			},
			Properties: DefibrillatorProperties{LocationCity: "Warszawa"},
		}
		got := ToFlatMap(d)
		assert.Equal(t, "Point", got["geometry_map_type"])
		assert.Equal(t, "21.0", got["geometry_coordinates_0"])
		assert.Equal(t, "52.2", got["geometry_coordinates_1"])
		assert.Equal(t, "Warszawa", got["properties_location_city"])
	})

	t.Run("every value is a scalar", func(t *testing.T) {
		station := AirQuality{
			Name: "Komunikacyjna",
			Data: []AirData{{ParamCode: "PM10"}, {ParamCode: "PM25"}},
		}
		got := ToFlatMap(station)
		for key, v := range got {
			switch v.(type) {
			case map[string]any, []any:
				t.Errorf("key %q still holds a composite value", key)
			}
		}
		assert.Equal(t, "PM10", got["data_0_param_code"])
		assert.Equal(t, "PM25", got["data_1_param_code"])
	})
}

func TestToJSON(t *testing.T) {
	value := 23.5
	active := true
	m := measurement{ID: "1", Value: &value, Active: &active}

	s, err := ToJSON(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","value":23.5,"status":true}`, s)

	t.Run("round trips", func(t *testing.T) {
		var back measurement
		require.NoError(t, json.Unmarshal([]byte(s), &back))
		assert.Equal(t, m, back)
	})

	t.Run("timestamps render as RFC 3339", func(t *testing.T) {
		ts := time.Date(2023, 5, 12, 11, 57, 46, 0, time.UTC)
		v := VehicleLocation{Time: &ts, Lines: "213"}
		s, err := ToJSON(v)
		require.NoError(t, err)
		assert.Contains(t, s, `"2023-05-12T11:57:46Z"`)
	})
}
