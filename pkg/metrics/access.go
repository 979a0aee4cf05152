package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AccessMetrics counts access-control decisions across the portal.
type AccessMetrics struct {
	pinVerify   *prometheus.CounterVec
	pinLockout  prometheus.Counter
	shareLinks  *prometheus.CounterVec
	portalReads *prometheus.CounterVec
}

// NewAccessMetrics registers the access counters on the provided registerer.
func NewAccessMetrics(reg prometheus.Registerer) *AccessMetrics {
	if reg == nil {
		return &AccessMetrics{}
	}
	pinVerify := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pin_verify_total",
		Help: "Producer PIN verification attempts by result.",
	}, []string{"result"})
	pinLockout := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pin_lockout_total",
		Help: "Lockouts triggered by repeated PIN failures.",
	})
	shareLinks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "share_link_resolutions_total",
		Help: "Share link resolution attempts by result.",
	}, []string{"result"})
	portalReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_access_total",
		Help: "Client portal shoot reads by result.",
	}, []string{"result"})
	reg.MustRegister(pinVerify, pinLockout, shareLinks, portalReads)
	return &AccessMetrics{
		pinVerify:   pinVerify,
		pinLockout:  pinLockout,
		shareLinks:  shareLinks,
		portalReads: portalReads,
	}
}

// IncPinVerify counts one PIN verification with the given result label.
func (a *AccessMetrics) IncPinVerify(result string) {
	if a == nil || a.pinVerify == nil {
		return
	}
	a.pinVerify.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncPinLockout counts one triggered lockout.
func (a *AccessMetrics) IncPinLockout() {
	if a == nil || a.pinLockout == nil {
		return
	}
	a.pinLockout.Inc()
}

// IncShareLinkResolution counts one share link resolution attempt.
func (a *AccessMetrics) IncShareLinkResolution(result string) {
	if a == nil || a.shareLinks == nil {
		return
	}
	a.shareLinks.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncPortalAccess counts one client portal read attempt.
func (a *AccessMetrics) IncPortalAccess(result string) {
	if a == nil || a.portalReads == nil {
		return
	}
	a.portalReads.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
