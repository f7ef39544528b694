package respond

import (
	"regexp"
)

var (
	// Provider API keys travel as a query parameter, so they show up in
	// wrapped URL errors.
	apikeyParamPattern = regexp.MustCompile(`(?i)(apikey|api_key|token)=[a-zA-Z0-9_-]+`)

	// Bearer tokens in echoed headers.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_.-]+`)

	// Database passwords inside DSNs.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with credentials masked so the
// message is safe to log.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = apikeyParamPattern.ReplaceAllString(msg, "$1=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
