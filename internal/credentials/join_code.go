package credentials

import (
	"crypto/rand"
	"math/big"
)

// Ambiguous characters (0/O, 1/I/L) are excluded so codes survive being
// read aloud or typed from a phone screen.
const joinCodeChars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const joinCodeLength = 8

// GenerateJoinCode generates a short human-enterable invitation code
func GenerateJoinCode() (string, error) {
	code := make([]byte, joinCodeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeChars))))
		if err != nil {
			return "", err
		}
		code[i] = joinCodeChars[num.Int64()]
	}
	return string(code), nil
}
