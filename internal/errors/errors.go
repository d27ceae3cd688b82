package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrAdminOnly           = errors.New("admin only")
	ErrNoStream            = errors.New("stream URL is not available")
	ErrNotConnected        = errors.New("event stream not connected")
	ErrRateLimited         = errors.New("rate limited")
	ErrDuplicateSuggestion = errors.New("suggestion already submitted")
	ErrNetworkError        = errors.New("network error")
	ErrTimeout             = errors.New("request timeout")
	ErrConfigNotFound      = errors.New("config file not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// RadioError wraps an error with a user-friendly suggestion.
type RadioError struct {
	Err        error
	Suggestion string
}

func (e *RadioError) Error() string {
	return e.Err.Error()
}

func (e *RadioError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &RadioError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var radioErr *RadioError
	if errors.As(err, &radioErr) && radioErr.Suggestion != "" {
		return radioErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNotAuthenticated) || strings.Contains(errStr, "not authenticated") ||
		strings.Contains(errStr, "401") {
		return "Run 'onlyyes login' and paste your session cookie to sign in"
	}

	if errors.Is(err, ErrAdminOnly) || strings.Contains(errStr, "admin only") ||
		strings.Contains(errStr, "403") {
		return "This command requires a moderator account"
	}

	if errors.Is(err, ErrNoStream) {
		return "The station has not published a stream URL yet. Try again in a moment"
	}

	if errors.Is(err, ErrDuplicateSuggestion) || strings.Contains(errStr, "already submitted") {
		return "You already suggested this song. Check 'onlyyes profile' for its status"
	}

	if errors.Is(err, ErrRateLimited) || strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") {
		return "Too many requests. Wait a moment and try again"
	}

	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and the server.base_url setting"
	}

	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "config") {
		return "Run 'onlyyes config init' to create a configuration file"
	}

	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The station backend is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
