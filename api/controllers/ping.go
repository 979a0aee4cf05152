package controllers

import (
	"net/http"

	"github.com/mayaserrano/framelight-backend/api/middleware"
	"github.com/mayaserrano/framelight-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if email := middleware.ProducerEmailFromContext(r.Context()); email != "" {
			payload["producer"] = email
		}
		responses.WriteSuccess(w, payload)
	}
}
