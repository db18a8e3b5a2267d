package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version tag carried in every response.
// Bump only when the envelope shape itself changes, never for payload
// schema changes.
const envelopeVersion = 1

// envelope is the uniform response wrapper: every payload travels under
// "data" on success, errors flatten their code/message/details to the
// top level.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Registered via huma config so handlers never deal with the
// wrapper themselves.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if errModel, ok := v.(*huma.ErrorModel); ok {
		return &envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   errModel.Detail,
			Code:    statusToCode(errModel.Status),
			Message: errModel.Detail,
			Details: errModel.Errors,
		}, nil
	}

	return &envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
