package at

import (
	"strconv"
	"strings"
)

// ParseHex returns the first value token of a response as a base 16
// number. A response without a token yields 0.
func ParseHex(buf []byte) uint64 {
	return parseUint(buf, 16)
}

// ParseUint8 returns the first value token of a response as a base 10
// number truncated to 8 bits. A response without a token yields 0.
func ParseUint8(buf []byte) uint8 {
	return uint8(parseUint(buf, 10))
}

// ParseUint32 returns the first value token of a response as a base 10
// number truncated to 32 bits. A response without a token yields 0.
func ParseUint32(buf []byte) uint32 {
	return uint32(parseUint(buf, 10))
}

// parseUint converts the longest run of valid digits at the start of the
// first token, the way strtoul does. Trailing garbage is ignored and a
// token without digits converts to 0.
func parseUint(buf []byte, base int) uint64 {
	token := FirstToken(buf)
	if token == nil {
		return 0
	}

	s := strings.TrimLeft(string(token), " \t")
	s = strings.TrimPrefix(s, "+")
	if base == 16 {
		if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok && digits(rest, base) > 0 {
			s = s[2:]
		}
	}

	n := digits(s, base)
	if n == 0 {
		return 0
	}

	v, err := strconv.ParseUint(s[:n], base, 64)
	if err != nil {
		// Only overflow is possible here; saturate like strtoul.
		return ^uint64(0)
	}
	return v
}

// digits returns the length of the run of base-valid digits s starts with.
func digits(s string, base int) int {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i], base) {
			return i
		}
	}
	return len(s)
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
