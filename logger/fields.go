package logger

// Standard field key constants for structured logging.
const (
	FieldComponent      = "component"
	FieldCorrelationID  = "correlation_id"
	FieldBackend        = "backend"
	FieldServiceID      = "service_id"
	FieldCheckID        = "check_id"
	FieldServiceCheckID = "service_check_id"
	FieldSlice          = "slice"
	FieldSource         = "source"
	FieldPath           = "path"
	FieldDeploymentID   = "deployment_id"
	FieldError          = "error"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("check_id", "disk", "backend", "sensu"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a check operation that failed.
func ErrorFields(checkID string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldCheckID: checkID,
		FieldError:   err.Error(),
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
