package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 81.18, Round(95.50*0.85))
	assert.Equal(t, 59.50, Round(70.00*0.85))
	assert.Equal(t, 0.01, Round(0.005))
	assert.Equal(t, -0.01, Round(-0.005))
	assert.Equal(t, 100.00, Round(100))
}

func TestValidateLuhn(t *testing.T) {
	assert.True(t, ValidateLuhn("4242424242424242"))
	assert.True(t, ValidateLuhn("4242 4242 4242 4242"))
	assert.True(t, ValidateLuhn("5555555555554444"))

	// Off-by-one checksum
	assert.False(t, ValidateLuhn("4242424242424243"))
	// Too short
	assert.False(t, ValidateLuhn("42424242"))
	// Non-digits
	assert.False(t, ValidateLuhn("4242-4242-4242-4242"))
	assert.False(t, ValidateLuhn(""))
}

func TestGenerateBookingCode(t *testing.T) {
	code := GenerateBookingCode("Passeio em Angra dos Reis", "Maria Clara")

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "PASSE", parts[0])
	assert.Equal(t, "MA", parts[1])
	assert.Len(t, parts[2], BookingCodeRandLength)
	for _, c := range parts[2] {
		assert.Contains(t, BookingCodeCharset, string(c))
	}
}

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID()
	assert.True(t, strings.HasPrefix(id, "MP-"))
	assert.NotEqual(t, id, GenerateTransactionID())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Maria Clara", NormalizeName("  Maria   Clara "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestEqualNames(t *testing.T) {
	assert.True(t, EqualNames("Maria  Clara", " maria clara"))
	assert.False(t, EqualNames("Maria Clara", "Maria C."))
}

func TestMapsURL(t *testing.T) {
	url := MapsURL("Praça Saens Peña (metrô)")
	assert.Contains(t, url, "https://www.google.com/maps/search/")
	assert.NotContains(t, url, " ")
}

func TestValidateOneOf(t *testing.T) {
	assert.NoError(t, ValidateOneOf("pix", "method", ValidMethods))
	assert.Error(t, ValidateOneOf("boleto", "method", ValidMethods))
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
}

func TestCleanFileName(t *testing.T) {
	assert.Equal(t, "Passeio_em_Angra", CleanFileName("Passeio em Angra"))
	assert.Equal(t, "relatorio_2025", CleanFileName(`relatorio/2025`))
}
