package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateCode returns n random bytes as an uppercase hex string.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// TicketNumber builds a human-readable ticket number from a millisecond
// timestamp component and a random suffix. A unique index on the tickets
// collection backstops the negligible collision probability.
func TicketNumber() (string, error) {
	suffix, err := GenerateCode(4)
	if err != nil {
		return "", err
	}

	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 32))
	return fmt.Sprintf("TKT-%s-%s", ts, suffix), nil
}
