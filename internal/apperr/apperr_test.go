package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeMappings(t *testing.T) {
	cases := []struct {
		code Code
		http int
		grpc codes.Code
	}{
		{CodeInvalidInput, http.StatusBadRequest, codes.InvalidArgument},
		{CodeNotFound, http.StatusNotFound, codes.NotFound},
		{CodeConflict, http.StatusConflict, codes.Aborted},
		{CodeInternal, http.StatusInternalServerError, codes.Internal},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.http, tc.code.HTTPStatus(), tc.code)
		assert.Equal(t, tc.grpc, tc.code.GRPCCode(), tc.code)
	}
}

func TestCodeOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NotFound("clearance not found"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.True(t, errors.Is(err, NotFound("")))
	assert.False(t, errors.Is(err, InvalidInput("")))

	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestMessageOf_HidesInternalCause(t *testing.T) {
	err := Internal("load clearance", errors.New("disk on fire"))
	assert.Equal(t, "unexpected server error", MessageOf(err))
	assert.Contains(t, err.Error(), "disk on fire")

	assert.Equal(t, "name is required", MessageOf(InvalidInput("name is required")))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(Conflict("lost race", nil)))
	assert.False(t, Retryable(NotFound("x")))
	assert.False(t, Retryable(nil))
}

func TestToGRPCStatus_CarriesReason(t *testing.T) {
	err := ToGRPCStatus(Conflict("clearance was modified concurrently", nil))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Aborted, st.Code())

	var found bool
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			found = true
			assert.Equal(t, string(CodeConflict), info.GetReason())
			assert.Equal(t, Domain, info.GetDomain())
		}
	}
	assert.True(t, found, "expected ErrorInfo detail")

	assert.NoError(t, ToGRPCStatus(nil))
}
