package auth

import (
	"fmt"
	"log/slog"
	"strings"
)

// minPasswordLength applies to every configured account.
const minPasswordLength = 12

var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"congreso",
	"senado",
	"diputados",
	"canal",
	"test",
	"default",
	"root",
}

var keyboardPatterns = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm", "qwerty", "asdfgh", "zxcvb"}

// ValidateAdminCredentials refuses to start the API with an empty or weak
// admin login.
func ValidateAdminCredentials(user, pass string) error {
	if user == "" {
		return fmt.Errorf("admin credentials: ADMIN_USER must not be empty")
	}
	if err := checkPassword(pass); err != nil {
		return fmt.Errorf("admin credentials: ADMIN_USER_PASSWORD %w", err)
	}
	return nil
}

// ValidateEditorCredentials reports whether the editor login may be enabled.
// A misconfigured editor is logged and disabled instead of failing startup.
func ValidateEditorCredentials(logger *slog.Logger, adminUser, user, pass string) bool {
	switch {
	case user == "":
		logger.Info("editor role not configured, running with the admin login only")
		return false
	case user == adminUser:
		logger.Warn("EDITOR_USER must differ from ADMIN_USER, disabling editor role")
		return false
	}
	if err := checkPassword(pass); err != nil {
		logger.Warn("EDITOR_USER_PASSWORD rejected, disabling editor role", slog.String("reason", err.Error()))
		return false
	}
	logger.Info("editor role configured", slog.String("user", user))
	return true
}

func checkPassword(pass string) error {
	if pass == "" {
		return fmt.Errorf("must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("must be at least %d characters", minPasswordLength)
	}
	if isRepeatedChar(pass) || isNumericSequence(pass) {
		return fmt.Errorf("must not be a simple pattern")
	}
	lower := strings.ToLower(pass)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) || strings.Contains(lower, reverse(pattern)) {
			return fmt.Errorf("must not be a keyboard pattern")
		}
	}
	for _, weak := range weakPasswordList {
		// A weak word padded with a few characters is still weak.
		if lower == weak || (strings.HasPrefix(lower, weak) && len(pass) < minPasswordLength+5) {
			return fmt.Errorf("must not be based on a common password")
		}
	}
	return nil
}

func isRepeatedChar(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

// isNumericSequence matches runs like 123456789012 or 987654321098.
func isNumericSequence(s string) bool {
	asc, desc := true, true
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		if i == 0 {
			continue
		}
		diff := int(s[i]) - int(s[i-1])
		asc = asc && (diff == 1 || diff == -9)
		desc = desc && (diff == -1 || diff == 9)
	}
	return asc || desc
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
