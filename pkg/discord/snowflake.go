package discord

import "strconv"

// ParseSnowflake converts a Discord snowflake string to an int64 ID.
// Returns 0 for empty or malformed input.
func ParseSnowflake(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// FormatSnowflake converts an int64 ID back to its snowflake string form.
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}
