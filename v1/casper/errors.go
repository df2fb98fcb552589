package casper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind classifies every error returned by the client.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown ErrorKind = iota
	// KindValidation: a precondition failed before any network call was made.
	KindValidation
	// KindRequest: the server answered with a non-success status, or the HTTP
	// round trip itself failed (status 0).
	KindRequest
	// KindNotFound: the server reported the target entity as missing (404).
	KindNotFound
	// KindDecode: a success response did not match the expected schema.
	KindDecode
	// KindStream: a matrix upload stream failed before its acknowledgment.
	KindStream
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	case KindNotFound:
		return "not_found"
	case KindDecode:
		return "decode"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Causes reachable with errors.Is on a *RequestError.
var (
	// ErrDimensionMismatch is returned when a vector length differs from the collection dimension.
	ErrDimensionMismatch = errors.New("casper: vector dimension mismatch")

	// ErrOperationNotAllowed is returned for 405 responses, e.g. writes to an immutable collection.
	ErrOperationNotAllowed = errors.New("casper: operation not allowed")

	// ErrAlreadyExists is returned for 409 responses, e.g. creating a second index.
	ErrAlreadyExists = errors.New("casper: already exists")

	// ErrServerError is returned for 5xx responses.
	ErrServerError = errors.New("casper: server error")

	// ErrResponseTooLarge is returned when a response body exceeds Config.MaxResponseBytes.
	ErrResponseTooLarge = errors.New("casper: response body too large")

	// ErrClientClosed is returned by every operation after Close.
	ErrClientClosed = errors.New("casper: client is closed")
)

// ValidationError reports a precondition violation detected without a network call.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("casper: %s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// RequestError reports a failed HTTP exchange.
//
// StatusCode is 0 when no response was received; Err then holds the transport
// error (including context cancellation).
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Body       []byte
	Err        error

	cause error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("casper: %s: request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("casper: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

// Kind returns KindRequest.
func (e *RequestError) Kind() ErrorKind { return KindRequest }

// Unwrap exposes the status-derived cause and the transport error.
func (e *RequestError) Unwrap() []error {
	var errs []error
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NotFoundError reports a 404 from the server.
type NotFoundError struct {
	Op       string
	Resource string
	Message  string
	Body     []byte
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("casper: %s: %s not found", e.Op, e.Resource)
	}
	return fmt.Sprintf("casper: %s: %s", e.Op, e.Message)
}

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() ErrorKind { return KindNotFound }

// StatusCode is always 404.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// DecodeError reports a success response whose body does not match the schema.
type DecodeError struct {
	Op   string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("casper: %s: decode response: %v", e.Op, e.Err)
}

// Kind returns KindDecode.
func (e *DecodeError) Kind() ErrorKind { return KindDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// StreamError reports a matrix upload that ended without an acknowledgment.
type StreamError struct {
	Op      string
	Matrix  string
	Code    codes.Code
	Message string
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("casper: %s: stream for matrix %q failed (%s): %s", e.Op, e.Matrix, e.Code, e.Message)
}

// Kind returns KindStream.
func (e *StreamError) Kind() ErrorKind { return KindStream }

func (e *StreamError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first error in err's chain that has one.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationError(op, field, reason string) error {
	return &ValidationError{Op: op, Field: field, Reason: reason}
}

// errorBody is the JSON error shape returned by the server.
type errorBody struct {
	Error string `json:"error"`
}

// translateStatus converts a non-success response into the error taxonomy.
func translateStatus(op, resource string, statusCode int, body []byte) error {
	message := strings.TrimSpace(string(body))
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		message = eb.Error
	}
	if statusCode == http.StatusNotFound {
		return &NotFoundError{Op: op, Resource: resource, Message: message, Body: body}
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	reqErr := &RequestError{Op: op, StatusCode: statusCode, Message: message, Body: body}
	switch {
	case statusCode == http.StatusBadRequest && mentionsDimension(message):
		reqErr.cause = ErrDimensionMismatch
	case statusCode == http.StatusMethodNotAllowed:
		reqErr.cause = ErrOperationNotAllowed
	case statusCode == http.StatusConflict:
		reqErr.cause = ErrAlreadyExists
	case statusCode >= 500:
		reqErr.cause = ErrServerError
	}
	return reqErr
}

func mentionsDimension(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "dimension") || strings.Contains(m, "dim mismatch")
}

// translateStreamError converts a gRPC failure into a StreamError.
func translateStreamError(op, matrix string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &StreamError{Op: op, Matrix: matrix, Code: codes.Unknown, Message: err.Error(), Err: err}
	}
	return &StreamError{Op: op, Matrix: matrix, Code: st.Code(), Message: st.Message(), Err: err}
}
