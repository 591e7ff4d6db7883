package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goblog/pkg/apperr"
	"goblog/pkg/response"
)

// writeAppError maps the typed application errors onto HTTP statuses. The
// field name travels in the error details so clients can highlight the
// offending input.
func writeAppError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		response.Error[any](c, http.StatusBadRequest, ve.Message, map[string]string{ve.Field: ve.Message})
		return
	}
	var ce *apperr.ConflictError
	if errors.As(err, &ce) {
		response.Error[any](c, http.StatusConflict, ce.Message, map[string]string{ce.Field: ce.Message})
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		response.Error[any](c, http.StatusNotFound, nf.Error(), nil)
		return
	}
	var pe *apperr.PermissionError
	if errors.As(err, &pe) {
		response.Error[any](c, http.StatusForbidden, pe.Error(), nil)
		return
	}
	var de *apperr.DeliveryError
	if errors.As(err, &de) {
		// The credential was already updated; the caller must know the mail
		// may not have arrived.
		response.Error[any](c, http.StatusBadGateway, "mail delivery failed", map[string]string{"email": de.Address})
		return
	}
	response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
}
