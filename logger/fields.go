package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldStage     = "stage"

	// Inputs
	FieldPath = "path"
	FieldFile = "file"
	FieldLine = "line"
	FieldKey  = "key"

	// Tree and paragraphs
	FieldMetadataID = "metadata_id"
	FieldPattern    = "pattern"
	FieldPatterns   = "patterns"
	FieldParagraphs = "paragraphs"
	FieldNodes      = "nodes"
	FieldLicense    = "license"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"
)

type contextKey string

const componentKey contextKey = "logger_component"

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}
	return fields
}

// LoggerFromContext returns the global logger with fields extracted from ctx.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	gen := &pipeline.Generator{Logger: logger.ComponentLogger("pipeline")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
