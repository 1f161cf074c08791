package models

// Envelope response codes. Every endpoint answers HTTP 200 and encodes the
// real outcome here.
const (
	CodeSuccess            = "SUCCESS"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeServerError        = "SERVER_ERROR"
)

// ResponseStatus pairs a machine-readable code with its fixed message.
type ResponseStatus struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response wrapper for every operation.
type Envelope struct {
	Response ResponseStatus `json:"response"`
	Result   any            `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

var statusMessages = map[string]string{
	CodeSuccess:            "operation completed successfully",
	CodeNotFound:           "requested entity not found",
	CodeInvalidCredentials: "invalid username or password",
	CodeServerError:        "internal server error",
}

func status(code string) ResponseStatus {
	return ResponseStatus{Code: code, Message: statusMessages[code]}
}

// Success wraps a payload in a SUCCESS envelope.
func Success(result any) Envelope {
	return Envelope{Response: status(CodeSuccess), Result: result}
}

// NotFound builds the NOT_FOUND envelope.
func NotFound() Envelope {
	return Envelope{Response: status(CodeNotFound)}
}

// InvalidCredentials builds the INVALID_CREDENTIALS envelope. The message is
// repeated in the error field, mirroring how login failures were always
// reported.
func InvalidCredentials() Envelope {
	st := status(CodeInvalidCredentials)
	return Envelope{Response: st, Error: st.Message}
}

// ServerError wraps a fault description in a SERVER_ERROR envelope. Callers
// must pass the error's text only; hashes and signing secrets never appear in
// error values produced by this codebase.
func ServerError(errMsg string) Envelope {
	return Envelope{Response: status(CodeServerError), Error: errMsg}
}
