package series

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"finance-tracker/internal/domain"
)

// Seed computes a deterministic generator seed from coin identity and
// range tag. Formula: first 8 bytes of SHA256(coin_id|range_tag),
// big-endian. The same (coin, range) pair always renders the same
// chart; distinct pairs diverge.
func Seed(coinID int64, r domain.Range) uint64 {
	data := fmt.Sprintf("%d|%s", coinID, string(r))
	hash := sha256.Sum256([]byte(data))
	return binary.BigEndian.Uint64(hash[:8])
}
