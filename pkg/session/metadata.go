package session

import (
	"net/http"

	"github.com/opsuite/sessionkit/pkg/clientip"
)

// Metadata carries per-request client details captured at session creation
// and compared on validation for anomaly logging.
type Metadata struct {
	IP        string
	UserAgent string
}

// MetadataFromRequest extracts client metadata from the request. An IP
// already resolved by the clientip middleware takes precedence over
// re-parsing headers.
func MetadataFromRequest(r *http.Request) Metadata {
	ip := clientip.GetIPFromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}

	return Metadata{
		IP:        ip,
		UserAgent: r.UserAgent(),
	}
}
