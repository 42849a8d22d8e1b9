package relay

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// ResolveDomain picks the domain sent upstream: the configured override, then the
// caller's domainName, then the host of origin, then FallbackDomain.
func ResolveDomain(configured, requested, origin string) string {
	return lo.CoalesceOrEmpty(
		strings.TrimSpace(configured),
		strings.TrimSpace(requested),
		hostFromOrigin(origin),
		FallbackDomain,
	)
}

func hostFromOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}
