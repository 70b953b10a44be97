package observability

// Header names attached to every published audit event.
const (
	HeaderRequestID = "x-request-id"
	HeaderTraceID   = "trace_id"
	HeaderEventType = "event_type"
)

// BuildHeaders returns the correlation headers for one audit event. Empty
// values are left out.
func BuildHeaders(requestID, traceID, eventType string) map[string]string {
	headers := make(map[string]string, 3)
	for key, value := range map[string]string{
		HeaderRequestID: requestID,
		HeaderTraceID:   traceID,
		HeaderEventType: eventType,
	} {
		if value != "" {
			headers[key] = value
		}
	}
	return headers
}
