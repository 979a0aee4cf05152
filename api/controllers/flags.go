package controllers

import (
	"net/http"

	"github.com/mayaserrano/framelight-backend/api/responses"
	"github.com/mayaserrano/framelight-backend/pkg/config"
)

type featureFlagsResponse struct {
	GiftCards        bool `json:"giftCards"`
	VideoPortal      bool `json:"videoPortal"`
	MoodboardUploads bool `json:"moodboardUploads"`
}

// PublicFlags exposes the feature toggles the portal frontend keys off.
func PublicFlags(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, featureFlagsResponse{
			GiftCards:        cfg.FeatureFlags.GiftCardsEnabled,
			VideoPortal:      cfg.FeatureFlags.VideoPortal,
			MoodboardUploads: cfg.FeatureFlags.MoodboardUploads,
		})
	}
}
