// Package email checks the syntax of email addresses.
package email

import "regexp"

// pattern is local-part@domain.tld with an alphabetic TLD of 2 to 64 letters.
var pattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// Valid reports whether s looks like an email address. It is a syntax check
// only; s is not normalized and no DNS lookup is made.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
