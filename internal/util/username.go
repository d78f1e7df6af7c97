package util

import "strings"

// NormalizeUsername is the single username comparison rule: lowercase
// and whitespace-trimmed. Login and the Excel import must agree on it,
// so both go through here.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
