package middleware

import "strconv"

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
