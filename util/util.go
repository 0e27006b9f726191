package util

import (
	"net/http"
	"strings"
	"time"
)

// Getter is the slice of http.Client the content adapters use. Tests
// swap in a fake.
type Getter interface {
	Get(url string) (*http.Response, error)
}

// QueryFrom joins search keywords into a query string, dropping the
// "-a" flag and the "-i <idx>" pair if present.
func QueryFrom(args []string) string {
	var keywords []string
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}

		if arg == "-i" {
			skipNext = true
			continue
		}

		if arg == "-a" {
			continue
		}

		keywords = append(keywords, arg)
	}

	return strings.Join(keywords, "+")
}

// FormatExpiry renders a unix epoch for humans, used in reminder
// listings and confirmations.
func FormatExpiry(expiry int64) string {
	return time.Unix(expiry, 0).Format(time.RFC1123)
}
