// Package query turns dashboard request parameters into bounded waitlist
// queries: a typed filter that renders to a squirrel predicate, a sort drawn
// from a column allow-list, and offset pagination with safe defaults.
package query

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// identifierRegex validates SQL identifiers (column names, table names).
// Must start with a letter or underscore, followed by alphanumeric or underscore.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// sqlReservedWords contains SQL keywords that cannot be used as identifiers.
var sqlReservedWords = map[string]bool{
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true,
	"DROP": true, "CREATE": true, "ALTER": true, "TRUNCATE": true,
	"EXEC": true, "EXECUTE": true, "UNION": true, "INTO": true,
	"FROM": true, "WHERE": true, "TABLE": true, "DATABASE": true,
	"GRANT": true, "REVOKE": true, "INDEX": true, "VIEW": true,
	"PROCEDURE": true, "FUNCTION": true, "TRIGGER": true, "SCHEMA": true,
}

// ValidateIdentifier ensures a SQL identifier (column name, table name) is safe.
// It rejects empty strings, strings over 128 characters, strings that don't
// match the identifier pattern, and SQL reserved words.
func ValidateIdentifier(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("identifier too long (max 128 chars): %q", name)
	}
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: must match [a-zA-Z_][a-zA-Z0-9_]*", name)
	}
	if sqlReservedWords[strings.ToUpper(name)] {
		return fmt.Errorf("identifier %q is a SQL reserved word", name)
	}
	return nil
}

// SanitizeStringValue removes null bytes and validates string length.
// This is a secondary defense; parameterization is the primary protection.
func SanitizeStringValue(val string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = 65535
	}
	// Remove null bytes which can cause issues in some databases.
	val = strings.ReplaceAll(val, "\x00", "")
	if len(val) > maxLen {
		return "", fmt.Errorf("string value too long (max %d chars)", maxLen)
	}
	return val, nil
}

// truncateString cuts val to at most maxLen bytes without splitting a rune.
// Invalid bytes before the cut are kept as they are.
func truncateString(val string, maxLen int) string {
	if len(val) <= maxLen {
		return val
	}
	cut := maxLen
	for i := 0; i < utf8.UTFMax-1 && cut > 0 && !utf8.RuneStart(val[cut]); i++ {
		cut--
	}
	return val[:cut]
}

// likeEscape is the escape character used in LIKE patterns. "!" has no
// special meaning in string literals on any supported dialect, unlike "\".
const likeEscape = "!"

// EscapeLike escapes LIKE wildcards in val so it matches literally.
// SQL Server also treats "[" as a wildcard, so it is escaped too.
func EscapeLike(val string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
		"[", likeEscape+"[",
	)
	return r.Replace(val)
}
