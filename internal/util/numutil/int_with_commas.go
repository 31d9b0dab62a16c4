package numutil

import "strconv"

// Integer is any integer type accepted by IntWithCommas.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T Integer](i T) string {
	s := strconv.FormatInt(int64(i), 10)
	if i > 0 && uint64(i) > 1<<63-1 {
		s = strconv.FormatUint(uint64(i), 10)
	}

	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}

	for n := len(s) - 3; n > 0; n -= 3 {
		s = s[:n] + "," + s[n:]
	}
	return sign + s
}
