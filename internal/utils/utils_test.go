package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("s3cret-pass", "not-a-hash"))

	again, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestEqualSecret(t *testing.T) {
	assert.True(t, EqualSecret("admin123", "admin123"))
	assert.False(t, EqualSecret("admin123", "admin124"))
	assert.False(t, EqualSecret("admin123", ""))
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.0, SumAmounts(nil))
	assert.Equal(t, 0.3, SumAmounts([]float64{0.1, 0.2}))
	assert.Equal(t, 350.5, SumAmounts([]float64{100, 250.5}))
}

func TestCalculateStats(t *testing.T) {
	avg, sd := CalculateStats(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0.0, sd)

	avg, sd = CalculateStats([]float64{120})
	assert.Equal(t, 120.0, avg)
	assert.Equal(t, 0.0, sd)

	avg, sd = CalculateStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 2.14, sd)
}
