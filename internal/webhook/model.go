package webhook

import (
	"fmt"
	"net/http"
)

// InboundWebhook is the provider payload as decoded from the request body.
type InboundWebhook map[string]interface{}

// MaxBodySize caps the inbound request body.
const MaxBodySize = 1 << 20

// OutboundPayload is the body posted to the internal callback. Its keys are
// always destination keys of the active profile's mapping table.
type OutboundPayload map[string]interface{}

// Result is the outcome of a request that reached the destination with a 2xx.
type Result struct {
	TransactionID    string
	ForwardStatus    int
	Payload          OutboundPayload
	CallbackResponse interface{}
}

type ErrorKind string

const (
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindEmptyBody        ErrorKind = "empty_body"
	KindBodyTooLarge     ErrorKind = "body_too_large"
	KindInvalidJSON      ErrorKind = "invalid_json"
	KindMissingField     ErrorKind = "missing_field"
	KindForwardTransport ErrorKind = "forward_transport"
	KindForwardRejected  ErrorKind = "forward_rejected"
)

// Error is a pipeline error that maps onto one caller-visible response.
type Error struct {
	Kind     ErrorKind
	Message  string
	Field    string
	Details  string
	HTTPCode int
}

func (e *Error) Error() string {
	switch {
	case e.Details != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	case e.HTTPCode != 0:
		return fmt.Sprintf("%s (http %d)", e.Message, e.HTTPCode)
	}
	return e.Message
}

// StatusCode is the status answered to the original caller.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindEmptyBody, KindInvalidJSON, KindMissingField:
		return http.StatusBadRequest
	case KindBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindForwardRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errMethodNotAllowed(method string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: fmt.Sprintf("Method %s not allowed, use POST", method)}
}

func errEmptyBody() *Error {
	return &Error{Kind: KindEmptyBody, Message: "Request body is empty"}
}

func errBodyTooLarge() *Error {
	return &Error{Kind: KindBodyTooLarge, Message: fmt.Sprintf("Request body exceeds %d bytes", MaxBodySize)}
}

func errInvalidJSON(diagnostic string) *Error {
	return &Error{Kind: KindInvalidJSON, Message: "Invalid JSON: " + diagnostic}
}

func errMissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: "Required field missing: " + field}
}

func errForwardTransport(cause error) *Error {
	return &Error{Kind: KindForwardTransport, Message: "Failed to forward webhook", Details: cause.Error()}
}

func errForwardRejected(code int) *Error {
	return &Error{Kind: KindForwardRejected, Message: fmt.Sprintf("Destination answered with HTTP %d", code), HTTPCode: code}
}

type Response struct {
	Status           string          `json:"status"`
	Message          string          `json:"message"`
	TransactionID    string          `json:"transaction_id"`
	ForwardStatus    int             `json:"forward_status"`
	PayloadEnviado   OutboundPayload `json:"payload_enviado"`
	CallbackResponse interface{}     `json:"callback_response"`
}

type ErrorResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	HTTPCode int    `json:"http_code,omitempty"`
}

func (r *Response) ParseFromResult(result Result) {
	r.Status = "success"
	r.Message = "Webhook forwarded"
	r.TransactionID = result.TransactionID
	r.ForwardStatus = result.ForwardStatus
	r.PayloadEnviado = result.Payload
	r.CallbackResponse = result.CallbackResponse
}

func (r *ErrorResponse) ParseFromError(err *Error) {
	r.Status = "error"
	r.Message = err.Message
	r.Details = err.Details
	r.HTTPCode = err.HTTPCode
}

// InternalErrorResponse is the only body an unexpected fault ever produces.
func InternalErrorResponse() ErrorResponse {
	return ErrorResponse{Status: "error", Message: "Internal server error"}
}
