package utils

// OrDash substitutes a placeholder for empty optional display values.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// OrDefault returns fallback when s is empty.
func OrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
