package http

import (
	"net/http"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/session"
	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/models"
)

const userPrefix = "/api/v1/user"

func (h *Handler) userRouter() http.Handler {
	router := newResourceRouter()

	router.Post("/signup", h.signUp)
	router.Post("/signin", h.signIn)
	router.Post("/signout", h.signOut)
	router.Get("/currentuser", h.currentUser)

	return mounted(userPrefix, router)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := utils.ReadJSON(r, &credentials); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	user, err := h.services.AuthService.SignUp(r.Context(), credentials)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	if err = h.startSession(r, user); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.ID).Msg("user signed up")
	utils.WriteJSON(w, models.CurrentUser{ID: user.ID, Email: user.Email}, http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := utils.ReadJSON(r, &credentials); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	user, err := h.services.AuthService.SignIn(r.Context(), credentials)
	if err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	if err = h.startSession(r, user); err != nil {
		pipeline.Abort(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CurrentUser{ID: user.ID, Email: user.Email}, http.StatusOK)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		pipeline.Abort(w, r, pipeline.UnhandledError(ErrNoSession))
		return
	}
	s.Clear()

	utils.WriteJSON(w, struct{}{}, http.StatusOK)
}

// currentUser reports the identity resolved by the optional identity stage.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	var resp models.CurrentUserResponse
	if user, ok := utils.CurrentUserFromContext(r.Context()); ok {
		resp.CurrentUser = &user
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// startSession stores a freshly issued JWT in the request's session.
func (h *Handler) startSession(r *http.Request, user models.User) error {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return pipeline.UnhandledError(ErrNoSession)
	}

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	s.Set(models.SessionTokenKey, token.SignedString)
	return nil
}
