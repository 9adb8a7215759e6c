package respond

import (
	"regexp"
)

var (
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// discord.com/api/webhooks/<id>/<token> and hooks.slack.com/services/T/B/<token>
	discordWebhookPattern = regexp.MustCompile(`(/api/webhooks/\d+/)[A-Za-z0-9_\-]+`)
	slackWebhookPattern   = regexp.MustCompile(`(hooks\.slack\.com/services/[A-Z0-9]+/[A-Z0-9]+/)[A-Za-z0-9]+`)

	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = discordWebhookPattern.ReplaceAllString(msg, "${1}****")
	msg = slackWebhookPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
