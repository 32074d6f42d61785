package records

// DefibrillatorGeometry places a defibrillator on the map.
type DefibrillatorGeometry struct {
	MapType     string   `json:"map_type"`
	Coordinates []string `json:"coordinates"`
}

// DefibrillatorProperties describes the device and its exact location.
// Attachment is a Base64-encoded photo, present only when a single device
// was requested by id.
type DefibrillatorProperties struct {
	DeviceManufacturer  string  `json:"device_manufacturer"`
	DevicePublicAccess  string  `json:"device_public_access"`
	LocationBuilding    string  `json:"location_building"`
	LocationCity        string  `json:"location_city"`
	LocationDescription string  `json:"location_description"`
	LocationObjectName  string  `json:"location_object_name"`
	LocationPostcode    string  `json:"location_postcode"`
	LocationStreet      string  `json:"location_street"`
	Attachment          *string `json:"attachment"`
}

// Defibrillator is one publicly registered AED device.
type Defibrillator struct {
	Geometry   DefibrillatorGeometry   `json:"geometry"`
	Properties DefibrillatorProperties `json:"properties"`
}

// NewDefibrillator builds a Defibrillator from one raw aed_get feature.
func NewDefibrillator(item Item) (Defibrillator, error) {
	d := newItemDecoder("Defibrillator", item)

	geom := d.object("geometry", "geometry")
	geometry := DefibrillatorGeometry{
		MapType: geom.str("type", "map_type"),
	}
	for _, raw := range geom.list("coordinates", "coordinates") {
		c := geom.scalarStr(raw, "coordinates")
		geometry.Coordinates = append(geometry.Coordinates, c)
	}
	d.adopt(geom)

	props := d.object("properties", "properties")
	properties := DefibrillatorProperties{
		DeviceManufacturer:  props.str("device_manufacturer", "device_manufacturer"),
		DevicePublicAccess:  props.str("device_public_access", "device_public_access"),
		LocationBuilding:    props.str("location_building", "location_building"),
		LocationCity:        props.str("location_city", "location_city"),
		LocationDescription: props.str("location_description", "location_description"),
		LocationObjectName:  props.str("location_object_name", "location_object_name"),
		LocationPostcode:    props.str("location_postcode", "location_postcode"),
		LocationStreet:      props.str("location_street", "location_street"),
		Attachment:          props.optStr("attachment", "attachment"),
	}
	d.adopt(props)

	return Defibrillator{Geometry: geometry, Properties: properties}, d.err
}
