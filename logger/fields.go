package logger

// Field keys shared across packages.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldItemID    = "item_id"
	FieldQuantity  = "quantity"
	FieldSource    = "source"
	FieldCount     = "count"
)

// Fields builds a field map from alternating keys and values. Non-string
// keys and a trailing key without a value are dropped.
//
//	log.Info("cart synced", logger.Fields(logger.FieldItemID, "42"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
