package database

import (
	"testing"

	"hospital-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID([]models.Patient{}))
	assert.Equal(t, 1, NextID[models.Patient](nil))

	records := []models.Patient{{ID: 3}, {ID: 9}, {ID: 4}}
	next := NextID(records)
	assert.Equal(t, 10, next)
	for _, r := range records {
		assert.Greater(t, next, r.ID)
	}
}

func TestFindByID(t *testing.T) {
	records := []models.Doctor{{ID: 1, LastName: "Smith"}, {ID: 2, LastName: "Jones"}}

	d, ok := FindByID(records, 2)
	require.True(t, ok)
	assert.Equal(t, "Jones", d.LastName)

	_, ok = FindByID(records, 3)
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	doc, err := Encode[models.Billing](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))

	bills, err := Decode[models.Billing]([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, bills)

	_, err = Decode[models.Billing]([]byte("{not json"))
	assert.Error(t, err)
}
