package log

// Field names shared across components so log lines stay queryable.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldUser       = "user"
	FieldRecordID   = "record_id"
	FieldProject    = "project"
	FieldStatus     = "status"
	FieldReason     = "reason"
	FieldSheetsRef  = "sheets_ref"
)

// Component names used with FieldComponent.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentKVStore   = "kvstore"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentSession   = "session"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
	ComponentBackend   = "backend"
)
