package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTemplateCorrupt indicates the template bytes could not be parsed
	// into a field catalog. The only fatal transcription error.
	ErrTemplateCorrupt = errors.New("template corrupt")

	// ErrCaseNotDraft indicates a snapshot update on a non-draft case
	ErrCaseNotDraft = errors.New("case is not a draft")

	// ErrFieldNotFound indicates a write to a field the document does not have
	ErrFieldNotFound = errors.New("field not found")

	// ErrUnsupportedCharset indicates a text value contains code points
	// outside the form's single-byte character set
	ErrUnsupportedCharset = errors.New("unsupported character in value")

	// ErrOptionNotAllowed indicates a dropdown value outside the declared set
	ErrOptionNotAllowed = errors.New("value not in option set")

	// ErrKindMismatch indicates a write that does not match the field's kind
	ErrKindMismatch = errors.New("field kind mismatch")
)
