package helpers

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NextID returns a 50-character identifier: a zero-padded millisecond
// timestamp, 32 hex characters of random uuid, and a constant "000" suffix.
// The timestamp prefix keeps ids non-decreasing so created-at ordering and
// id ordering agree; uniqueness comes from the uuid part.
func NextID() string {
	u := uuid.New()
	return fmt.Sprintf("%015d%s000", time.Now().UnixMilli(), hex.EncodeToString(u[:]))
}
