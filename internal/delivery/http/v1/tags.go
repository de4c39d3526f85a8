package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type suggestTagsRequest struct {
	Note string   `json:"note"`
	Tags []string `json:"tags"`
}

type suggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// HandleSuggestTags asks the suggestion service for tags matching the
// note and merges them into the submitted tag set. Nothing is persisted
// here: the merged set only takes effect when the form is submitted.
func (h *handlerImpl) HandleSuggestTags(c *gin.Context) {
	var req suggestTagsRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	suggested, err := h.tasks.SuggestTags(c, req.Note)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to suggest tags")
		if errors.Is(err, services.ErrEmptyNote) {
			abort(c, newBadRequestError(services.ErrEmptyNote.Error()))
			return
		}
		abort(c, newBadGatewayError("tag suggestion failed"))
		return
	}

	c.JSON(http.StatusOK, suggestTagsResponse{
		Tags: models.MergeTags(req.Tags, suggested),
	})
}
