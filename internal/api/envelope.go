package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/shopsphere/storefront-client/internal/errors"
)

// envelope is the backend's response wrapper: data on success, a coded
// error body otherwise.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func decodeResponse(resp *http.Response, dest any) error {

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NetworkError("Failed to read response body").WithError(err)
	}

	var env envelope

	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return statusError(resp.StatusCode, "The store service returned an unexpected response")
		}

		return apperrors.InternalError("Failed to parse response body").WithError(err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := "The store service returned an error"
		code := ""

		if env.Error != nil {
			if env.Error.Message != "" {
				message = env.Error.Message
			}

			code = env.Error.Code
		}

		appErr := statusError(resp.StatusCode, message)
		if code != "" {
			appErr.Code = code
		}

		if env.Error != nil && len(env.Error.Details) > 0 {
			appErr = appErr.WithDetail(env.Error.Details[0])
		}

		return appErr
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		return apperrors.InternalError("Failed to decode response data").WithError(err)
	}

	return nil
}

func statusError(status int, message string) *apperrors.AppError {

	var appErr *apperrors.AppError

	switch status {
	case http.StatusNotFound:
		appErr = apperrors.NotFoundError(message)
	case http.StatusUnauthorized:
		appErr = apperrors.UnauthorizedError(message)
	case http.StatusForbidden:
		appErr = apperrors.ForbiddenError(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		appErr = apperrors.BadRequestError(message)
	default:
		appErr = apperrors.InternalError(message)
	}

	appErr.StatusCode = status

	return appErr
}
