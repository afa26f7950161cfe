package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const giftcardAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// ParseUUIDs parses every string, stopping at the first invalid one
func ParseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := ParseUUID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GenerateGiftcardCode generates a random code grouped as XXXX-XXXX-XXXX
func GenerateGiftcardCode() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(giftcardAlphabet)))
	for i := 0; i < 12; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(giftcardAlphabet[n.Int64()])
	}
	return b.String(), nil
}
