package errors

// ErrorCode is the machine readable code returned in error responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1003

	// Pulse pipeline
	ErrorCode_PULSE_MISSING_NOTES      ErrorCode = 2000
	ErrorCode_PULSE_INVALID_PASSCODE   ErrorCode = 2001
	ErrorCode_PULSE_EXTRACTION_INVALID ErrorCode = 2002

	// AI
	ErrorCode_AI_NOT_CONFIGURED        ErrorCode = 3000
	ErrorCode_AI_SERVICE_UNAVAILABLE   ErrorCode = 3001
	ErrorCode_AI_EXTRACTION_FAILED     ErrorCode = 3002
	ErrorCode_REPORT_GENERATION_FAILED ErrorCode = 3003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_PULSE_MISSING_NOTES:        "PULSE_MISSING_NOTES",
	ErrorCode_PULSE_INVALID_PASSCODE:     "PULSE_INVALID_PASSCODE",
	ErrorCode_PULSE_EXTRACTION_INVALID:   "PULSE_EXTRACTION_INVALID",
	ErrorCode_AI_NOT_CONFIGURED:          "AI_NOT_CONFIGURED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_EXTRACTION_FAILED:       "AI_EXTRACTION_FAILED",
	ErrorCode_REPORT_GENERATION_FAILED:   "REPORT_GENERATION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
