package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldOperation is the structured log field key for the scoring/generation step.
	FieldOperation = "ai_operation"
)

// CommonFields returns standard zap fields that describe the AI provider and model.
// Empty values are ignored.
func CommonFields(provider, model string) []zap.Field {
	out := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(provider); v != "" {
		out = append(out, zap.String(FieldProvider, v))
	}
	if v := strings.TrimSpace(model); v != "" {
		out = append(out, zap.String(FieldModel, v))
	}
	return out
}

// WithCommonFields attaches the common AI fields to the provided logger.
// A nil logger is replaced with a no-op logger.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)
	fields := CommonFields(provider, model)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// Operation tags a log entry with the AI operation name.
func Operation(op string) zap.Field {
	return zap.String(FieldOperation, strings.TrimSpace(op))
}
