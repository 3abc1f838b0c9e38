// Package topic turns logical topic names into transport topic names.
package topic

import (
	"strconv"
	"strings"
)

const (
	// Prefix starts every sanitized topic name.
	Prefix = "ros2_"

	// MaxLength bounds the length of a sanitized topic name in bytes.
	MaxLength = 256

	checksumModulus    = 1_000_000_007
	checksumMultiplier = 31
)

// Sanitize maps an arbitrary topic name to one that is safe on the robotics
// bus: Prefix, then the input with every character outside [A-Za-z0-9_]
// replaced by '_', then the decimal Checksum of the input. The body is
// truncated so the result never exceeds MaxLength; the checksum is kept whole.
//
// Replacement is per character, so a multi-byte UTF-8 character becomes a
// single '_'. Distinct inputs can still collide when both the sanitized body
// and the checksum agree.
func Sanitize(input string) string {
	var body strings.Builder
	body.Grow(len(input))
	for _, r := range input {
		if isTopicChar(r) {
			body.WriteRune(r)
		} else {
			body.WriteByte('_')
		}
	}

	checksum := strconv.FormatUint(Checksum(input), 10)

	sanitized := body.String()
	allowed := MaxLength - len(Prefix) - len(checksum)
	if allowed < 0 {
		allowed = 0
	}
	if len(sanitized) > allowed {
		sanitized = sanitized[:allowed]
	}

	return Prefix + sanitized + checksum
}

// Checksum is the polynomial hash acc = (acc*31 + b) mod 1_000_000_007 over
// the raw bytes of input, starting at zero.
func Checksum(input string) uint64 {
	var acc uint64
	for i := 0; i < len(input); i++ {
		acc = (acc*checksumMultiplier + uint64(input[i])) % checksumModulus
	}
	return acc
}

func isTopicChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
