// Package utils provides common utility functions.
package utils

import "net/http"

// BuildHeaders creates the request headers sent with every API call.
// Custom headers are added after the defaults.
func BuildHeaders(userAgent string, customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", userAgent)
	headers.Set("Accept", "application/json")

	for key, value := range customHeaders {
		headers.Add(key, value)
	}

	return headers
}
