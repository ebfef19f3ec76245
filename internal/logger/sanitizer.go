package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// Sanitizer redacts credentials before they reach any log output.
// The service handles OAuth access tokens and API keys on every request,
// so raw log args cannot be trusted.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// sensitiveKeys are arg keys whose values are always redacted
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"accesstoken":   true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"credential":    true,
}

// NewSanitizer creates a sanitizer with the default patterns
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: []*regexp.Regexp{
			// Bearer tokens in headers or error strings
			regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-._~+/]+=*`),
			// Google OAuth access tokens
			regexp.MustCompile(`ya29\.[A-Za-z0-9\-._]+`),
			// Google API keys
			regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
		},
	}
}

// SanitizeArgs redacts sensitive key/value pairs and scrubs token-shaped
// substrings from string values.
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)

	for i := 0; i < len(out)-1; i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if sensitiveKeys[strings.ToLower(key)] {
			out[i+1] = "[REDACTED]"
			continue
		}
		if str, ok := out[i+1].(string); ok {
			out[i+1] = s.sanitizeString(str)
		} else if err, ok := out[i+1].(error); ok && err != nil {
			out[i+1] = s.sanitizeString(err.Error())
		}
	}

	// Odd trailing arg
	if len(out)%2 == 1 {
		if str, ok := out[len(out)-1].(string); ok {
			out[len(out)-1] = s.sanitizeString(str)
		}
	}

	return out
}

func (s *Sanitizer) sanitizeString(value string) string {
	for _, pattern := range s.patterns {
		value = pattern.ReplaceAllString(value, "[REDACTED]")
	}
	return value
}

// SanitizeError returns a scrubbed copy of an error's message
func (s *Sanitizer) SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s", s.sanitizeString(err.Error()))
}
