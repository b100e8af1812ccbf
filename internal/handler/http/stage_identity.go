package http

import (
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/session"
	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/models"
)

const (
	stageRequireIdentity  = "require-identity"
	stageOptionalIdentity = "optional-identity"
)

// identityStage resolves the current user from the session JWT. In required
// mode a missing or invalid token fails with Unauthorized; otherwise the
// request proceeds anonymously.
func (h *Handler) identityStage(required bool) pipeline.Stage {
	name := stageOptionalIdentity
	if required {
		name = stageRequireIdentity
	}

	return pipeline.Func(name, func(ex *pipeline.Exchange) pipeline.Result {
		user, ok := h.resolveIdentity(ex)
		if !ok {
			if required {
				return pipeline.Fail(pipeline.UnauthorizedError())
			}
			return pipeline.Proceed()
		}

		ex.Request = ex.Request.WithContext(utils.WithCurrentUser(ex.Request.Context(), user))
		return pipeline.Proceed()
	})
}

func (h *Handler) resolveIdentity(ex *pipeline.Exchange) (models.CurrentUser, bool) {
	ctx := ex.Request.Context()

	s, ok := session.FromContext(ctx)
	if !ok {
		return models.CurrentUser{}, false
	}
	raw := s.GetString(models.SessionTokenKey)
	if raw == "" {
		return models.CurrentUser{}, false
	}

	token, err := h.services.AuthService.ParseToken(ctx, raw)
	if err != nil {
		logger.FromRequest(ex.Request).Debug().Err(err).Msg("session token rejected")
		return models.CurrentUser{}, false
	}
	return token.CurrentUser(), true
}
