package story

import (
	"net/http"

	storyUC "social-news/internal/usecase/story"
)

// Register registers all story-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *storyUC.Service) {
	mux.Handle("GET    /stories", ListHandler{svc})
	mux.Handle("POST   /stories", CreateHandler{svc})
	mux.Handle("POST   /stories/{id}/votes", VoteHandler{svc})
	mux.Handle("PATCH  /stories/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /stories/{id}", DeleteHandler{svc})
}
