package controllers

import (
	"net/http"
	"strings"

	"github.com/mayaserrano/framelight-backend/api/middleware"
	"github.com/mayaserrano/framelight-backend/api/responses"
	"github.com/mayaserrano/framelight-backend/internal/shoots"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
)

// PortalShoot serves the client-facing shoot payload. The token query
// parameter carries either the shoot access token or a share link token;
// the service decides which and answers denials uniformly.
func PortalShoot(svc shoots.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shoot service unavailable"))
			return
		}

		id, err := shootIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "token is required"))
			return
		}

		result, err := svc.GetForClient(r.Context(), id, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PortalAcceptTerms records the client's terms acceptance along with the
// accepting address. Repeat calls return the stored state unchanged.
func PortalAcceptTerms(svc shoots.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shoot service unavailable"))
			return
		}

		id, err := shootIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "token is required"))
			return
		}

		result, err := svc.AcceptTerms(r.Context(), id, token, middleware.ResolveClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
