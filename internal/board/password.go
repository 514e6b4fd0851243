package board

import (
	"strconv"
	"unicode/utf16"
)

// HashPassword computes the stored password hash: a 32-bit rolling hash
// (h = h*31 + unit over UTF-16 code units, wrapping as int32) rendered in base 36.
//
// This is NOT a cryptographic hash. It is kept bit-compatible so that user
// records written by earlier versions of the board keep working.
func HashPassword(password string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(password)) {
		h = h*31 + int32(unit)
	}
	return strconv.FormatInt(int64(h), 36)
}
