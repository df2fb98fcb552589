package casper

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTranslateStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     ErrorKind
		sentinel error
		message  string
	}{
		{"not found", http.StatusNotFound, `{"error":"collection docs not found"}`, KindNotFound, nil, "collection docs not found"},
		{"dimension mismatch", http.StatusBadRequest, `{"error":"vector dimension mismatch: expected 4, got 3"}`, KindRequest, ErrDimensionMismatch, "vector dimension mismatch: expected 4, got 3"},
		{"plain bad request", http.StatusBadRequest, `{"error":"collection is full"}`, KindRequest, nil, "collection is full"},
		{"not allowed", http.StatusMethodNotAllowed, `{"error":"collection is immutable"}`, KindRequest, ErrOperationNotAllowed, "collection is immutable"},
		{"conflict", http.StatusConflict, `{"error":"index already exists"}`, KindRequest, ErrAlreadyExists, "index already exists"},
		{"server error with text body", http.StatusInternalServerError, "boom", KindRequest, ErrServerError, "boom"},
		{"empty body", http.StatusBadGateway, "", KindRequest, ErrServerError, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateStatus("op", "thing", tt.status, []byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Contains(t, err.Error(), tt.message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}

			if tt.kind == KindRequest {
				var reqErr *RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, tt.status, reqErr.StatusCode)
				assert.Equal(t, tt.message, reqErr.Message)
				assert.Equal(t, []byte(tt.body), reqErr.Body)
			}
		})
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := translateStatus("delete_collection", "collection c", http.StatusNotFound, []byte(`{"error":"collection c not found"}`))
	assert.Equal(t, "casper: delete_collection: collection c not found", err.Error())

	bare := translateStatus("get_vector", "vector 7", http.StatusNotFound, nil)
	assert.Equal(t, "casper: get_vector: vector 7 not found", bare.Error())
}

func TestTranslateStatusKeepsSentinelsApart(t *testing.T) {
	err := translateStatus("op", "thing", http.StatusConflict, nil)
	assert.NotErrorIs(t, err, ErrDimensionMismatch)
	assert.NotErrorIs(t, err, ErrServerError)
	assert.False(t, IsNotFound(err))
}

func TestRequestErrorWrapsTransportFailure(t *testing.T) {
	err := error(&RequestError{Op: "search", Err: context.DeadlineExceeded})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, KindRequest, KindOf(err))
	assert.Contains(t, err.Error(), "request failed")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindValidation, KindOf(validationError("op", "name", "must not be empty")))
	assert.Equal(t, KindDecode, KindOf(&DecodeError{Op: "op", Err: errors.New("bad")}))
	assert.Equal(t, KindStream, KindOf(&StreamError{Op: "op", Code: codes.Internal}))

	wrapped := errors.Join(errors.New("context"), &NotFoundError{Op: "op", Resource: "x"})
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsValidation(validationError("op", "f", "r")))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "request", KindRequest.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "stream", KindStream.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestTranslateStreamError(t *testing.T) {
	err := translateStreamError("upload_matrix", "m", status.Error(codes.ResourceExhausted, "too big"))

	var se *StreamError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codes.ResourceExhausted, se.Code)
	assert.Equal(t, "too big", se.Message)
	assert.Equal(t, "m", se.Matrix)

	plain := translateStreamError("upload_matrix", "m", errors.New("oops"))
	require.ErrorAs(t, plain, &se)
	assert.Equal(t, codes.Unknown, se.Code)
}
