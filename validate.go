package goMockAuth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// credentialRules is the compiled form of ValidationConfig.
type credentialRules struct {
	minPassword int
	minUsername int
	pattern     *regexp.Regexp
	reserved    map[string]string // lower-cased -> as configured
}

func newCredentialRules(cfg ValidationConfig) (*credentialRules, error) {
	pattern, err := regexp.Compile(cfg.UsernamePattern)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]string, len(cfg.ReservedUsernames))
	for _, name := range cfg.ReservedUsernames {
		reserved[strings.ToLower(name)] = name
	}
	return &credentialRules{
		minPassword: cfg.MinPasswordLength,
		minUsername: cfg.MinUsernameLength,
		pattern:     pattern,
		reserved:    reserved,
	}, nil
}

// check applies the rules in fixed order and returns the first failure.
func (r *credentialRules) check(creds Credentials) error {
	if textLength(creds.Password) < r.minPassword {
		return newValidationError(ErrPasswordTooShort,
			fmt.Sprintf("password length must be at least %d characters long", r.minPassword))
	}

	if textLength(creds.Username) < r.minUsername {
		return newValidationError(ErrUsernameTooShort,
			fmt.Sprintf("username length must be at least %d characters long", r.minUsername))
	}

	if !r.pattern.MatchString(creds.Username) {
		return newValidationError(ErrUsernameInvalid,
			"username must only include alphanumeric, hyphens, or underscores")
	}

	if name, taken := r.reserved[strings.ToLower(creds.Username)]; taken {
		return newValidationError(ErrUsernameTaken,
			fmt.Sprintf("%q username is already taken", name))
	}

	return nil
}

// textLength counts UTF-16 code units, the length a browser form reports. Characters
// outside the Basic Multilingual Plane count as two.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
