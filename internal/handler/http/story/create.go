package story

import (
	"net/http"

	"social-news/internal/handler/http/respond"
	storyUC "social-news/internal/usecase/story"
)

type CreateHandler struct{ Svc *storyUC.Service }

type createRequest struct {
	URL   string `json:"url" example:"https://www.bbc.co.uk/news/uk-12345678"`
	Title string `json:"title" example:"Story"`
}

// ServeHTTP ストーリー作成
// @Summary      ストーリー作成
// @Description  スコア 0 でストーリーを登録します
// @Tags         stories
// @Accept       json
// @Produce      json
// @Param        story body createRequest true "URL とタイトル"
// @Success      200 {object} respond.MessageBody "Success"
// @Failure      400 {object} respond.ErrorBody "Request must contain URL & title"
// @Failure      500 {object} respond.ErrorBody "Insert story failed."
// @Router       /stories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}

	if _, err := h.Svc.Create(r.Context(), storyUC.CreateInput{
		URL:   req.URL,
		Title: req.Title,
	}); err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}
	respond.Message(w, http.StatusOK, "Success")
}
