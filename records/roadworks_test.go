package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoadWorksCompany(t *testing.T) {
	c, err := NewRoadWorksCompany(Item{"Value": "MPWiK", "Code": "102"})
	require.NoError(t, err)
	assert.Equal(t, "MPWiK", c.Name)
	assert.Equal(t, "102", c.Code)
}

func TestNewRoadWorksCategory(t *testing.T) {
	t.Run("child node keeps its parent id", func(t *testing.T) {
		c, err := NewRoadWorksCategory(Item{
			"ID":              "7",
			"ParentID":        "2",
			"Name":            "wodociągi",
			"SpecialModeCode": nil,
		})
		require.NoError(t, err)
		require.NotNil(t, c.ParentID)
		assert.Equal(t, "2", *c.ParentID)
		assert.Nil(t, c.SpecialModeCode)
	})

	t.Run("root node has a placeholder parent", func(t *testing.T) {
		// The feed marks root nodes with a non-string ParentID value.
		c, err := NewRoadWorksCategory(Item{
			"ID":       "2",
			"ParentID": map[string]any{"@nil": "true"},
			"Name":     "infrastruktura",
		})
		require.NoError(t, err)
		assert.Nil(t, c.ParentID)
	})

	t.Run("absent parent key fails construction", func(t *testing.T) {
		_, err := NewRoadWorksCategory(Item{"ID": "2", "Name": "infrastruktura"})
		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "parent_id", cerr.Field)
	})
}

func TestNewRoadWorksInvestment(t *testing.T) {
	item := Item{
		"ID":             "1183",
		"Name":           "budowa sieci wodociągowej",
		"Street":         "Puławska",
		"StartDate":      "2023-04-03T00:00:00",
		"EndDate":        "2023-09-29T00:00:00",
		"LastModifyDate": "2023-04-01T08:12:30",
	}

	i, err := NewRoadWorksInvestment(item)
	require.NoError(t, err)

	assert.Equal(t, "Puławska", i.Street)
	require.NotNil(t, i.StartDate)
	assert.Equal(t, time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC), *i.StartDate)
	require.NotNil(t, i.LastModifyDate)
	assert.Equal(t, 8, i.LastModifyDate.Hour())
}
