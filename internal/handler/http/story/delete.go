package story

import (
	"net/http"

	"social-news/internal/domain/entity"
	"social-news/internal/handler/http/pathutil"
	"social-news/internal/handler/http/respond"
	storyUC "social-news/internal/usecase/story"
)

type DeleteHandler struct{ Svc *storyUC.Service }

// ServeHTTP ストーリー削除
// @Summary      ストーリー削除
// @Description  ストーリーとその投票を削除します
// @Tags         stories
// @Produce      json
// @Param        id path int true "ストーリー ID"
// @Success      200 {object} respond.MessageBody "successful"
// @Failure      404 {object} respond.ErrorBody "Delete story failed."
// @Router       /stories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, storyUC.ErrIncorrectID, nil)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, r, err, respond.Overrides{entity.ErrWriteFailed: http.StatusNotFound})
		return
	}
	respond.Message(w, http.StatusOK, "successful")
}
