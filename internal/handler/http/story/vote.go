package story

import (
	"net/http"
	"strings"

	"social-news/internal/domain/entity"
	"social-news/internal/handler/http/pathutil"
	"social-news/internal/handler/http/respond"
	storyUC "social-news/internal/usecase/story"
)

type VoteHandler struct{ Svc *storyUC.Service }

type voteRequest struct {
	Direction string `json:"direction" example:"up" enums:"up,down"`
}

// 存在しない ID と direction 欠落は 404 として返す
var voteOverrides = respond.Overrides{
	storyUC.ErrIncorrectID: http.StatusNotFound,
	storyUC.ErrMissingVote: http.StatusNotFound,
	entity.ErrWriteFailed:  http.StatusNotFound,
}

// ServeHTTP 投票
// @Summary      投票
// @Description  up で +1、down で -1 スコアを変更し、投票を記録します
// @Tags         stories
// @Accept       json
// @Produce      json
// @Param        id   path int         true "ストーリー ID"
// @Param        vote body voteRequest true "投票方向"
// @Success      200 {object} respond.MessageBody "successful"
// @Failure      400 {object} respond.ErrorBody "invalid direction"
// @Failure      404 {object} respond.ErrorBody "Incorrect ID. / Request must contain if it is up or down"
// @Router       /stories/{id}/votes [post]
func (h VoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, storyUC.ErrIncorrectID, voteOverrides)
		return
	}

	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}
	if strings.TrimSpace(req.Direction) == "" {
		respond.SafeError(w, r, storyUC.ErrMissingVote, voteOverrides)
		return
	}
	dir, err := entity.ParseDirection(req.Direction)
	if err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}

	if err := h.Svc.Vote(r.Context(), id, dir); err != nil {
		respond.SafeError(w, r, err, voteOverrides)
		return
	}
	respond.Message(w, http.StatusOK, "successful")
}
