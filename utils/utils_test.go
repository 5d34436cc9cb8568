package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "manager")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.EqualValues(t, 7, claims.EmployeeID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "little-lemon-reservations", claims.Issuer)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0.00", FormatCurrency(0))
	assert.Equal(t, "15.50", FormatCurrency(15.5))
	assert.Equal(t, "1,234.50", FormatCurrency(1234.5))
	assert.Equal(t, "1,234,567.89", FormatCurrency(1234567.89))
	assert.Equal(t, "-9,876.00", FormatCurrency(-9876))
}
