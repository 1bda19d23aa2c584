package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldRoute      = "route"
	FieldPage       = "page"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDate       = "date"
	FieldItemName   = "item_name"
	FieldPrice      = "price"
	FieldLoggedIn   = "logged_in"
	FieldBackend    = "backend"
	FieldFieldCount = "invalid_fields"
	FieldRequestID  = "request_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAPI     = "api"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentForm    = "form"
	ComponentPage    = "page"
	ComponentRouter  = "router"
	ComponentRefresh = "refresh"
	ComponentAMQP    = "amqp"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSubmit   = "submit"
	OpValidate = "validate"
	OpNavigate = "navigate"
	OpMount    = "mount"
	OpUnmount  = "unmount"
	OpRefresh  = "refresh"
	OpPublish  = "publish"
	OpLogin    = "login"
	OpLogout   = "logout"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeNetwork    = "network_error"
	ErrorTypeStatus     = "status_error"
	ErrorTypeAuth       = "auth_error"
	ErrorTypeStorage    = "storage_error"
	ErrorTypeInternal   = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithPage adds the page route
func (f LogFields) WithPage(route string) LogFields {
	f[FieldPage] = route
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(itemName string, price float64, date string) LogFields {
	f[FieldItemName] = itemName
	f[FieldPrice] = price
	f[FieldDate] = date
	return f
}

// WithHTTPRequest adds outbound request fields
func (f LogFields) WithHTTPRequest(method, url string) LogFields {
	f[FieldMethod] = method
	f[FieldURL] = url
	return f
}

// WithRequestID adds the request ID when there is one
func (f LogFields) WithRequestID(id string) LogFields {
	if id != "" {
		f[FieldRequestID] = id
	}
	return f
}

// WithHTTPResponse adds response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = statusCode > 0 && statusCode < 400
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
