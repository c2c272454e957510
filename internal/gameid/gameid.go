// Package gameid generates hand identifiers: a UUIDv7 encoded as a
// 26-character lowercase Crockford base32 string, in the style of TypeID.
// IDs sort lexically in creation order.
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of every generated ID.
const Length = 26

// Generate creates a new ID from a UUIDv7.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the system random source does.
		panic("gameid: " + err.Error())
	}
	return Encode(id)
}

// Encode writes the 128 bits of id as 26 base32 characters, padded with
// two leading zero bits so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for b := range 5 {
			pos := i*5 + b - 2
			v <<= 1
			if pos >= 0 {
				v |= (id[pos/8] >> (7 - pos%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode reverses Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for b := range 5 {
			pos := i*5 + b - 2
			if pos < 0 {
				continue
			}
			if v&(0x10>>b) != 0 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

// Validate checks an ID is 26 base32 characters with a first character
// no greater than 7.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
