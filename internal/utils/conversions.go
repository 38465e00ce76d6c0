package utils

import "strconv"

// ToInt64 parses s as a base-10 integer, falling back to defaultValue
// when s is empty or not a number.
func ToInt64(s string, defaultValue int64) int64 {
	if s == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
