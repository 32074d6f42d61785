package records

// Theater is one theater of the municipal culture registry. Website,
// administrative unit and mail are absent from many rows.
type Theater struct {
	PhoneOrFax         string  `json:"phone_or_fax"`
	AdministrativeUnit *string `json:"administrative_unit"`
	UpdateDate         string  `json:"update_date"`
	ObjectID           string  `json:"object_id"`
	Number             string  `json:"number"`
	Postcode           string  `json:"postcode"`
	Description        string  `json:"description"`
	Street             string  `json:"street"`
	District           string  `json:"district"`
	Website            *string `json:"website"`
	Mail               *string `json:"mail"`
}

// NewTheater builds a Theater from one WFS feature.
func NewTheater(item Item) (Theater, error) {
	d := newItemDecoder("Theater", item)
	t := Theater{
		PhoneOrFax:         d.str("TEL_FAX", "phone_or_fax"),
		AdministrativeUnit: d.optStr("JEDN_ADM", "administrative_unit"),
		UpdateDate:         d.str("AKTU_DAN", "update_date"),
		ObjectID:           d.str("OBJECTID", "object_id"),
		Number:             d.str("NUMER", "number"),
		Postcode:           d.str("KOD", "postcode"),
		Description:        d.str("OPIS", "description"),
		Street:             d.str("ULICA", "street"),
		District:           d.str("DZIELNICA", "district"),
		Website:            d.optStr("WWW", "website"),
		Mail:               d.optStr("MAIL", "mail"),
	}
	return t, d.err
}
