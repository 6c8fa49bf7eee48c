package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/milangdev/moviefi-test-task/errs"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := &errs.Error{Code: errs.ENOTFOUND, Message: "movie does not exist"}
	assert.Equal(t, "application error: code=not_found message=movie does not exist", err.Error())

	empty := &errs.Error{Code: errs.EINTERNAL}
	assert.Equal(t, "application error: code=internal message=", empty.Error())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"invalid", &errs.Error{Code: errs.EINVALID, Message: "publishing year out of range"}, errs.EINVALID},
		{"not found", &errs.Error{Code: errs.ENOTFOUND, Message: "movie does not exist"}, errs.ENOTFOUND},
		{"conflict", &errs.Error{Code: errs.ECONFLICT, Message: "email already registered"}, errs.ECONFLICT},
		{"unauthorized", &errs.Error{Code: errs.EUNAUTHORIZED, Message: "session expired"}, errs.EUNAUTHORIZED},
		{"plain error collapses to internal", errors.New("pq: connection refused"), errs.EINTERNAL},
		{"wrapped application error", fmt.Errorf("list movies: %w", &errs.Error{Code: errs.EINVALID, Message: "bad page"}), errs.EINVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"application error", &errs.Error{Code: errs.EINVALID, Message: "poster is required"}, "poster is required"},
		{"plain error is masked", errors.New("pq: connection refused"), "Internal error."},
		{"wrapped application error", fmt.Errorf("get movie: %w", &errs.Error{Code: errs.ENOTFOUND, Message: "movie does not exist"}), "movie does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.ErrorMessage(tt.err))
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.ENOTFOUND, "movie %q not found", "m-42")

	assert.Equal(t, errs.ENOTFOUND, err.Code)
	assert.Equal(t, `movie "m-42" not found`, err.Message)
	assert.Equal(t, `application error: code=not_found message=movie "m-42" not found`, err.Error())
}
