package records

import (
	"time"

	"github.com/mermaid-go/mermaid/coerce"
)

// RoadWorksCompany is a contractor performing road construction works.
type RoadWorksCompany struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// NewRoadWorksCompany builds a RoadWorksCompany from one combo item.
func NewRoadWorksCompany(item Item) (RoadWorksCompany, error) {
	d := newItemDecoder("RoadWorksCompany", item)
	c := RoadWorksCompany{
		Name: d.str("Value", "name"),
		Code: d.str("Code", "code"),
	}
	return c, d.err
}

// RoadWorksDistrict is a district with ongoing road construction works.
type RoadWorksDistrict struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// NewRoadWorksDistrict builds a RoadWorksDistrict from one combo item.
func NewRoadWorksDistrict(item Item) (RoadWorksDistrict, error) {
	d := newItemDecoder("RoadWorksDistrict", item)
	w := RoadWorksDistrict{
		Name: d.str("Value", "name"),
		Code: d.str("Code", "code"),
	}
	return w, d.err
}

// RoadWorksCategory is one node of the road works category tree. The feed
// marks a missing parent with a non-string placeholder, so ParentID is nil
// for root nodes.
type RoadWorksCategory struct {
	ID              string  `json:"id"`
	ParentID        *string `json:"parent_id"`
	Name            string  `json:"name"`
	SpecialModeCode *string `json:"special_mode_code"`
}

// NewRoadWorksCategory builds a RoadWorksCategory from one tree node.
func NewRoadWorksCategory(item Item) (RoadWorksCategory, error) {
	d := newItemDecoder("RoadWorksCategory", item)
	c := RoadWorksCategory{
		ID:              d.str("ID", "id"),
		Name:            d.str("Name", "name"),
		SpecialModeCode: d.optStr("SpecialModeCode", "special_mode_code"),
	}
	if raw, ok := item["ParentID"]; ok {
		if s, isStr := raw.(string); isStr {
			c.ParentID = &s
		}
	} else {
		d.fail("parent_id", nil)
	}
	return c, d.err
}

// RoadWorksInvestment is one open road works investment.
type RoadWorksInvestment struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Street         string     `json:"street"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	LastModifyDate *time.Time `json:"last_modify_date"`
}

// NewRoadWorksInvestment builds a RoadWorksInvestment from one invest item.
func NewRoadWorksInvestment(item Item) (RoadWorksInvestment, error) {
	d := newItemDecoder("RoadWorksInvestment", item)
	i := RoadWorksInvestment{
		ID:             d.str("ID", "id"),
		Name:           d.str("Name", "name"),
		Street:         d.str("Street", "street"),
		StartDate:      d.timestamp(coerce.DateTimeT, "StartDate", "start_date"),
		EndDate:        d.timestamp(coerce.DateTimeT, "EndDate", "end_date"),
		LastModifyDate: d.timestamp(coerce.DateTimeT, "LastModifyDate", "last_modify_date"),
	}
	return i, d.err
}
