package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/ledseq/internal/led"
)

// mapLEDError maps domain errors to HTTP errors
func mapLEDError(err error) error {
	var ledErr *led.Error
	if !errors.As(err, &ledErr) {
		return huma.Error500InternalServerError("internal server error", err)
	}

	switch ledErr.Code {
	case led.ErrCodeUnknownSequence:
		return huma.Error404NotFound(ledErr.Error(), err)
	case led.ErrCodeLineBusy:
		return huma.Error409Conflict(ledErr.Error(), err)
	case led.ErrCodeInvalidArgument:
		return huma.Error400BadRequest(ledErr.Error(), err)
	default:
		return huma.Error500InternalServerError(ledErr.Error(), err)
	}
}
