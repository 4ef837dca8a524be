package goMockAuth

import "errors"

var (
	// ErrValidation matches every credential validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrPasswordTooShort is the kind of the password length rule.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrUsernameTooShort is the kind of the username length rule.
	ErrUsernameTooShort = errors.New("username too short")
	// ErrUsernameInvalid is the kind of the username character rule.
	ErrUsernameInvalid = errors.New("invalid username characters")
	// ErrUsernameTaken is the kind of the reserved username rule.
	ErrUsernameTaken = errors.New("username taken")
	// ErrSessionCreationFailed is returned when identifiers cannot be generated or the
	// new session cannot be stored.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrIdentifierGeneration is joined into ErrSessionCreationFailed when the random
	// source behind UserID or Token fails.
	ErrIdentifierGeneration = errors.New("identifier generation failed")
	// ErrSessionStoreUnavailable is returned when the session holder fails.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
	// ErrEngineNotReady is returned by methods called on a nil or unbuilt Engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ValidationError is the failure raised when submitted credentials break a format or
// uniqueness rule. Kind is one of the rule sentinels above; Message is the
// human-readable text shown to the user.
type ValidationError struct {
	Kind    error
	Message string
}

func newValidationError(kind error, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return ErrValidation.Error()
}

// Is reports whether target is ErrValidation or the rule kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Kind != nil && target == e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// AsValidationError extracts the *ValidationError carried by err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	return asValidationError(err)
}

func asValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
