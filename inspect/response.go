package inspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/dingu/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries listing metadata.
type Meta struct {
	Total int `json:"total"`
}

// respondWithError derives the status and body from err's application error.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

func respondOK(c *gin.Context, data any, meta *Meta) {
	c.JSON(http.StatusOK, DataResponse{Data: data, Meta: meta})
}
