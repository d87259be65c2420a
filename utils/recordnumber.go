package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// NewRecordNumber returns the human-readable register label REG-YY-NNNN.
// The 4-digit random space is not collision-proof; the database id is
// the real key and this is a display label only.
func NewRecordNumber() string {
	year := time.Now().Format("06")
	return fmt.Sprintf("REG-%s-%04d", year, rand.Intn(10000))
}
