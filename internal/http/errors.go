package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/models"
	"github.com/lillringan/Ordersystem/internal/service"
)

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (re ResponseError) Error() string {
	return re.Message
}

func newResponseError(code string, msg string) ResponseError {
	return ResponseError{
		Code:    code,
		Message: msg,
	}
}

func newInternalError(msg string, args ...any) ResponseError {
	return newResponseError(ErrCodeInternal, fmt.Sprintf(msg, args...))
}

func (rtr *router) handleError(w http.ResponseWriter, err error) {
	respErr := rtr.mapError(err)
	status := statusForCode(respErr.Code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&models.ErrorResponse{
		Error: models.Error{
			Code:    respErr.Code,
			Message: respErr.Message,
		},
	})
}

func (rtr *router) mapError(err error) ResponseError {
	var respErr ResponseError
	if errors.As(err, &respErr) {
		return respErr
	}

	switch {
	case errors.Is(err, service.ErrUserValidation),
		errors.Is(err, service.ErrTeamValidation),
		errors.Is(err, service.ErrWorkItemValidation),
		errors.Is(err, service.ErrIssueValidation):
		return newResponseError(ErrCodeValidation, err.Error())
	case errors.Is(err, service.ErrTeamExists):
		return newResponseError(ErrCodeTeamExists, "team_name already exists")
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrWorkItemNotFound),
		errors.Is(err, service.ErrIssueNotFound):
		return newResponseError(ErrCodeNotFound, "resource not found")
	default:
		return newInternalError("internal error")
	}
}

func statusForCode(code string) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeTeamExists:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
