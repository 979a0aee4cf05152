package controllers

import (
	"net/http"

	"github.com/mayaserrano/framelight-backend/api/middleware"
	"github.com/mayaserrano/framelight-backend/api/responses"
	"github.com/mayaserrano/framelight-backend/api/validators"
	"github.com/mayaserrano/framelight-backend/internal/pinauth"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
)

// AuthPinVerify wires the PIN endpoint into the HTTP layer. The lockout
// limiter keys on the caller's IP, which the rate-limit middleware has
// already resolved into the request context.
func AuthPinVerify(svc pinauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body pinauth.VerifyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body.ClientID = middleware.ClientIPFromContext(r.Context())
		if body.ClientID == "" {
			body.ClientID = r.RemoteAddr
		}

		result, err := svc.Verify(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the redis session behind the caller's JWT.
func AuthLogout(svc pinauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
