package story

import (
	"net/http"

	"social-news/internal/domain/entity"
	"social-news/internal/handler/http/pathutil"
	"social-news/internal/handler/http/respond"
	storyUC "social-news/internal/usecase/story"
)

type UpdateHandler struct{ Svc *storyUC.Service }

var patchOverrides = respond.Overrides{
	storyUC.ErrEmptyPatch: http.StatusNotFound,
	entity.ErrWriteFailed: http.StatusNotFound,
}

type patchRequest struct {
	URL   *string `json:"url,omitempty" example:"https://www.bbc.co.uk/news/uk-87654321"`
	Title *string `json:"title,omitempty" example:"Updated title"`
}

// ServeHTTP ストーリー更新
// @Summary      ストーリー更新
// @Description  URL とタイトルの一方または両方を更新します。updated_at も更新されます
// @Tags         stories
// @Accept       json
// @Produce      json
// @Param        id    path int          true "ストーリー ID"
// @Param        story body patchRequest true "更新内容"
// @Success      200 {object} respond.MessageBody "Successful"
// @Failure      400 {object} respond.ErrorBody "Incorrect ID."
// @Failure      404 {object} respond.ErrorBody "Request must contain URL and/or title. / Update story failed."
// @Router       /stories/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, storyUC.ErrIncorrectID, nil)
		return
	}

	var req patchRequest
	if err := decodeBody(r, &req); err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}

	if err := h.Svc.Patch(r.Context(), storyUC.PatchInput{
		ID:    id,
		URL:   req.URL,
		Title: req.Title,
	}); err != nil {
		respond.SafeError(w, r, err, patchOverrides)
		return
	}
	respond.Message(w, http.StatusOK, "Successful")
}
