package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iniside/velesarc-craft/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "recipe not found",
			expected: "NOT_FOUND: recipe not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "ingredients missing",
			expected: "FAILED_PRECONDITION: ingredients missing",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("asset missing").WithMeta(errors.MetaAssetPath, "tables/metal")
	wrapped := errors.Wrap(baseErr, "failed to load table")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to load table", wrapped.Message)
	s.Equal("tables/metal", wrapped.Meta[errors.MetaAssetPath])
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	wrapped := errors.Wrap(fmt.Errorf("disk on fire"), "failed to read asset")
	s.Equal(errors.CodeInternal, wrapped.Code)
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("x").WithMeta("k", "v")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeDataLoss, "corrupt entry")

	s.Equal(errors.CodeDataLoss, wrapped.Code)
	s.Equal("v", wrapped.Meta["k"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestWithSuggestion() {
	err := errors.NotFound(`asset "tables/metl" not found`).WithSuggestion("tables/metal")

	s.Contains(err.Message, `did you mean "tables/metal"?`)
	s.Equal("tables/metal", errors.GetSuggestion(err))
	s.Equal("tables/metal", errors.GetSuggestion(errors.Wrap(err, "load failed")))

	plain := errors.NotFound("nothing close").WithSuggestion("")
	s.Equal("nothing close", plain.Message)
	s.Empty(errors.GetSuggestion(plain))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")

	s.Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Equal(errors.CodeNotFound, errors.GetCode(errors.Wrap(err, "wrapped")))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.True(errors.CodeUnavailable.Retryable())
	s.True(errors.CodeResourceExhausted.Retryable())
	s.False(errors.CodeInvalidArgument.Retryable())
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("recipe not found").WithMeta(errors.MetaAssetPath, "recipes/sword")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("recipe not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Equal("recipes/sword", errors.GetMeta(back)[errors.MetaAssetPath])
}

func (s *ErrorsTestSuite) TestFromPlainGRPCError() {
	err := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
	s.Equal("invalid input", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeResourceExhausted, codes.ResourceExhausted},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeDataLoss, codes.DataLoss},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
