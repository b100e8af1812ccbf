package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/models"
)

const postPrefix = "/api/v1/post"

func (h *Handler) postRouter() http.Handler {
	router := newResourceRouter()

	router.Post("/", h.createPost)
	router.Get("/", h.listPosts)
	router.Get("/{id}", h.getPost)
	router.Put("/{id}", h.updatePost)
	router.Delete("/{id}", h.deletePost)

	return mounted(postPrefix, router)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		pipeline.Abort(w, r, ErrNoCurrentUser)
		return
	}

	var req models.CreatePostRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	post, err := h.services.PostService.CreatePost(r.Context(), user.ID, req)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("post_id", post.ID).Int64("user_id", user.ID).Msg("post created")
	utils.WriteJSON(w, post, http.StatusCreated)
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.services.PostService.ListPosts(r.Context())
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	post, err := h.services.PostService.GetPost(r.Context(), id)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		pipeline.Abort(w, r, ErrNoCurrentUser)
		return
	}

	id, err := postID(r)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	var req models.UpdatePostRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), models.PostUpdate{
		ID:       id,
		AuthorID: user.ID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		pipeline.Abort(w, r, ErrNoCurrentUser)
		return
	}

	id, err := postID(r)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), id, user.ID); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPostID
	}
	return id, nil
}
