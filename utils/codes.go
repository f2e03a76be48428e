package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

const receiptCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReceiptPrefix is prepended to every generated receipt number.
const ReceiptPrefix = "RCP-"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// randomCode produces n characters from A-Z0-9, e.g. "AB4D93KF".
// Uses crypto/rand with math/big to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(receiptCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(receiptCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateReceiptNumber returns a collision-resistant receipt identifier of
// the form "RCP-XXXXXXXX".
func GenerateReceiptNumber() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return ReceiptPrefix + code, nil
}
