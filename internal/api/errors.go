package api

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/contact-scheduler/kb"
	"github.com/signalsfoundry/contact-scheduler/model"
)

func errorCode(err error) codes.Code {
	switch {
	case errors.Is(err, model.ErrInvalidInstance),
		errors.Is(err, ErrInvalidRequest):
		return codes.InvalidArgument
	case errors.Is(err, kb.ErrInstanceNotFound),
		errors.Is(err, kb.ErrNoReport):
		return codes.NotFound
	case errors.Is(err, kb.ErrInstanceExists):
		return codes.AlreadyExists
	case errors.Is(err, ErrNoRunHistory):
		return codes.Unimplemented
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// ToStatusError maps scheduler errors onto gRPC status codes.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(errorCode(err), err.Error())
}

// HTTPStatus maps scheduler errors onto HTTP status codes.
func HTTPStatus(err error) int {
	switch errorCode(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
