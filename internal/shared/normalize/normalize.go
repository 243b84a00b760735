// Package normalize derives comparison keys for master-style fields so
// duplicate checks can run against a stored, indexed column instead of
// scanning and re-normalizing every row.
package normalize

import "strings"

var identifierReplacer = strings.NewReplacer("_", "", " ", "", "-", "")

// Value trims, collapses inner whitespace to single spaces and
// case-folds. Used for display-text fields (design names, process names).
func Value(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Key normalizes identifiers (usernames, design numbers) where spacing
// and separators carry no meaning: "john_doe", "John Doe" and
// " johndoe " all map to "johndoe".
func Key(s string) string {
	return identifierReplacer.Replace(Value(s))
}
