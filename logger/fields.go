package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldContainer = "container_id"
	FieldEntry     = "entry"
	FieldLocator   = "locator"
	FieldStack     = "stack"
	FieldCount     = "count"
	FieldFile      = "file"
	FieldFormat    = "format"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map from alternating key-value pairs.
//
//	logger.Info("compiled", logger.Fields("package", "wired", "entries", 12))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// EntryFields creates fields for a resolved entry.
func EntryFields(entry string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldEntry:    entry,
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
