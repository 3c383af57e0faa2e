package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID generates a unique payment transaction token.
// The MP prefix mirrors the simulated provider used by the product.
func GenerateTransactionID() string {
	return "MP-" + uuid.NewString()
}

// GenerateBookingCode builds a human-readable booking token from the
// destination and the passenger's name, e.g. "ANGRA-MC-8J3K".
func GenerateBookingCode(destination, userName string) string {
	return fmt.Sprintf("%s-%s-%s",
		codePrefix(destination, 5),
		codePrefix(userName, 2),
		randomCode(BookingCodeRandLength),
	)
}

func codePrefix(s string, n int) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if len(cleaned) > n {
		cleaned = cleaned[:n]
	}
	if cleaned == "" {
		cleaned = randomCode(n)
	}
	return cleaned
}

func randomCode(length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = BookingCodeCharset[rand.Intn(len(BookingCodeCharset))]
	}
	return string(result)
}
