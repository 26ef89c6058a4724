package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSearchID identifies one engine invocation across all of its log entries.
	FieldSearchID = "search_id"
	// FieldOutreachType is the outreach type of the searched criteria.
	FieldOutreachType = "outreach_type"
	// FieldProvider names the external service a component talks to.
	FieldProvider = "provider"
	// FieldModel is the LLM model identifier.
	FieldModel = "model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// SearchFields returns the fields attached to every log entry of one search.
func SearchFields(searchID, outreachType string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSearchID, Value: searchID},
		StringField{Key: FieldOutreachType, Value: outreachType},
	)
}

// ProviderFields describes an external provider and, for LLMs, the model.
func ProviderFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
