// Package handid generates sortable identifiers for finalized hand records.
// IDs are UUIDv7 values encoded as 26-character Crockford base32 strings, so
// lexical order follows capture order.
package handid

import (
	"crypto/rand"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// now is swappable for deterministic tests.
var now = time.Now

// New returns a fresh hand record identifier.
func New() string {
	var id [16]byte

	// 48-bit millisecond timestamp in the leading bytes.
	ms := now().UnixMilli()
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)

	if _, err := rand.Read(id[6:]); err != nil {
		panic("handid: failed to read random bytes: " + err.Error())
	}

	// Version 7, variant 10.
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// encode packs 128 bits into 26 base32 characters, 5 bits per character.
func encode(data [16]byte) string {
	out := make([]byte, 26)
	for i := range out {
		bit := i * 5
		byteIdx := bit / 8
		bitIdx := bit % 8

		var v uint8
		if byteIdx < len(data) {
			if bitIdx <= 3 {
				v = (data[byteIdx] >> (3 - bitIdx)) & 0x1f
			} else {
				v = (data[byteIdx] << (bitIdx - 3)) & 0x1f
				if byteIdx+1 < len(data) {
					v |= data[byteIdx+1] >> (11 - bitIdx)
				}
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate reports whether id is a well-formed hand identifier.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
