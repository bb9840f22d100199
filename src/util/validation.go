package util

import "strings"

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// RequireFields returns the names of the required fields that are empty after
// trimming, in the order given.
func RequireFields(fields map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
