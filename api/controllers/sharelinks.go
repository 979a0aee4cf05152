package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mayaserrano/framelight-backend/api/middleware"
	"github.com/mayaserrano/framelight-backend/api/responses"
	"github.com/mayaserrano/framelight-backend/api/validators"
	"github.com/mayaserrano/framelight-backend/internal/sharelinks"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
)

// ShareLinkCreate issues a new share URL for a shoot. The plaintext token
// appears only in this response; the store keeps a hash.
func ShareLinkCreate(svc sharelinks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "share link service unavailable"))
			return
		}

		shootID, err := shootIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sharelinks.CreateShareLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		createdBy := middleware.ProducerEmailFromContext(r.Context())

		result, err := svc.Create(r.Context(), shootID, body, createdBy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ShareLinkList returns the share links issued for a shoot, hashes omitted.
func ShareLinkList(svc sharelinks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "share link service unavailable"))
			return
		}

		shootID, err := shootIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), shootID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ShareLinkRevoke disables a share link immediately.
func ShareLinkRevoke(svc sharelinks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "share link service unavailable"))
			return
		}

		shootID, err := shootIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		linkIDParam := strings.TrimSpace(chi.URLParam(r, "linkId"))
		if linkIDParam == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "link id is required"))
			return
		}

		linkID, err := uuid.Parse(linkIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid link id"))
			return
		}

		if err := svc.Revoke(r.Context(), shootID, linkID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
