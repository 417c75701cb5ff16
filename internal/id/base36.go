package id

import (
	"errors"
	"strconv"
	"strings"
)

// Codes are the base-36 rendering of a link identifier: digits 0-9 then
// lowercase a-z, most significant digit first, no padding, no sign.
// strconv uses exactly this alphabet for base 36, so both directions wrap
// it instead of reimplementing the base conversion.

// ErrInvalidCode reports a string that is not a well-formed base-36 code.
var ErrInvalidCode = errors.New("invalid code")

// Encode converts a non-negative identifier to its base-36 code.
// Encode(0) == "0", Encode(35) == "z", Encode(36) == "10".
func Encode(n int64) string {
	if n < 0 {
		// Identifiers are store-assigned and never negative.
		return "0"
	}
	return strconv.FormatInt(n, 36)
}

// Decode converts a base-36 code back to its identifier. Matching is
// case-insensitive: "ZZ" and "zz" both decode to 1295. Returns
// ErrInvalidCode for empty input, for any character outside 0-9 and the
// latin letters, and for values that do not fit in an int64.
func Decode(code string) (int64, error) {
	if code == "" {
		return 0, ErrInvalidCode
	}
	// ParseUint rejects the sign prefixes ParseInt would accept; codes
	// never carry one. Bit size 63 keeps the result in int64 range.
	n, err := strconv.ParseUint(strings.ToLower(code), 36, 63)
	if err != nil {
		return 0, ErrInvalidCode
	}
	return int64(n), nil
}
