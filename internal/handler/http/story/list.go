package story

import (
	"net/http"

	"social-news/internal/handler/http/respond"
	storyUC "social-news/internal/usecase/story"
)

type ListHandler struct{ Svc *storyUC.Service }

// ServeHTTP ストーリー一覧取得
// @Summary      ストーリー一覧取得
// @Description  タイトル検索・並び替え付きでストーリーを一覧します
// @Tags         stories
// @Produce      json
// @Param        search query string false "タイトルの部分一致 (大文字小文字を区別しない)"
// @Param        sort   query string false "id|title|url|score|created|modified" default(created)
// @Param        order  query string false "asc|desc" default(asc)
// @Success      200 {array} DTO
// @Failure      400 {object} respond.ErrorBody "invalid sort or order"
// @Failure      404 {object} respond.ErrorBody "No stories were found"
// @Router       /stories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stories, err := h.Svc.List(r.Context(), storyUC.ListInput{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	})
	if err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}

	out := make([]DTO, 0, len(stories))
	for _, s := range stories {
		out = append(out, toDTO(s))
	}
	respond.JSON(w, http.StatusOK, out)
}
