// Package entropy draws the random seeds used when a caller does not pin
// one. crypto/rand with a wall-clock fallback; never fails.
// See design doc Section 4.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"
)

// Uint32 returns a uniformly random 32-bit seed.
func Uint32() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Practically unreachable; degrade to clock bits rather than fail.
		slog.Warn("crypto/rand unavailable, falling back to clock", "error", err)
		return uint32(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint32(buf[:])
}
