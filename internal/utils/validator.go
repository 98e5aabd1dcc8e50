package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?\(?[0-9]{1,4}\)?[0-9 \-]{5,15}$`)

// ValidatePhone validates a phone number such as +380501111111 or (050) 111-11-11
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GravatarURL returns the default avatar for an email address
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(SanitizeEmail(email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}
