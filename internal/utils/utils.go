package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
)

// GenerateRandomString generates a random string of the specified length
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:length], nil
}

// Ordinal returns the ordinal form of n, e.g. 1 -> "1st", 12 -> "12th"
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatPlace returns a display label for a finishing position, e.g. "1st Place"
func FormatPlace(position int) string {
	return fmt.Sprintf("%s Place", Ordinal(position))
}
