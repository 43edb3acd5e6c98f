package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Business identifiers set once at the top of a request flow show up on every log line below it.
type LogFields struct {
	UserID       *int64  // Authenticated caller
	ReefID       *int64  // Shared group of the two participants
	ContextID    *int64  // Bridge thread or retro
	SubmissionID *int64  // Submission being enriched
	Kind         *string // "bridge" or "retro"
	Component    string  // Component name, e.g. "reef.service.resolver"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.ReefID != nil {
		result.ReefID = new.ReefID
	}
	if new.ContextID != nil {
		result.ContextID = new.ContextID
	}
	if new.SubmissionID != nil {
		result.SubmissionID = new.SubmissionID
	}
	if new.Kind != nil {
		result.Kind = new.Kind
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ContextID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
