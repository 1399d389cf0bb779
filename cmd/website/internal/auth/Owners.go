package auth

import (
	"strings"

	"github.com/adampresley/adamgokit/slices"
)

/*
ParseAllowList splits a comma-separated list of owner emails, trimming
whitespace and dropping empty entries.
*/
func ParseAllowList(raw string) []string {
	result := []string{}

	for _, email := range strings.Split(raw, ",") {
		email = strings.TrimSpace(email)

		if email != "" {
			result = append(result, email)
		}
	}

	return result
}

/*
IsOwner reports whether an email belongs to the configured owner
allow-list. Owners are the only principals permitted destructive
actions.
*/
func IsOwner(email string, allowList []string) bool {
	if email == "" {
		return false
	}

	return slices.IsInSlice(email, allowList)
}
