// Package refresh keeps the provider's access token fresh from the client
// side: it reads the expiry the provider publishes in the accessExpiry
// cookie and asks for a refresh shortly before it runs out.
package refresh

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExpiryCookie holds the access token expiry in milliseconds since the epoch.
const ExpiryCookie = "accessExpiry"

var checksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "admissible",
		Name:      "token_refresh_checks_total",
		Help:      "Access token expiry checks by outcome",
	},
	[]string{"result"},
)

// Refresher calls the refresh endpoint with the caller's cookies and
// returns the cookies the response set.
type Refresher interface {
	Refresh(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error)
}

type Checker struct {
	refresher Refresher
	threshold time.Duration
	now       func() time.Time
}

func New(refresher Refresher, threshold time.Duration) *Checker {
	return &Checker{refresher: refresher, threshold: threshold, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Expiry returns the expiry in ms from cookies. A missing, empty,
// non-numeric or zero value reports ok=false.
func Expiry(cookies []*http.Cookie) (float64, bool) {
	for _, c := range cookies {
		if c.Name != ExpiryCookie {
			continue
		}
		v, err := strconv.ParseFloat(c.Value, 64)
		if err != nil || math.IsNaN(v) || v == 0 {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// CheckRefreshAccessToken issues one refresh request when the access token
// has less than the threshold left, including when it has already expired.
// Errors are logged and dropped; the caller carries on with its request and
// lets the protected endpoint decide. The returned cookies are whatever the
// refresh response set (nil when no refresh happened).
func (c *Checker) CheckRefreshAccessToken(ctx context.Context, cookies []*http.Cookie) []*http.Cookie {
	expiry, ok := Expiry(cookies)
	if !ok {
		checksTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	now := float64(c.now().UnixMilli())
	if expiry-now >= float64(c.threshold.Milliseconds()) {
		checksTotal.WithLabelValues("fresh").Inc()
		return nil
	}

	set, err := c.refresher.Refresh(ctx, cookies)
	if err != nil {
		checksTotal.WithLabelValues("failed").Inc()
		logger.Log.Warn("access token refresh failed", "error", err)
		return nil
	}
	checksTotal.WithLabelValues("refreshed").Inc()

	if newExpiry, ok := Expiry(set); ok {
		logger.Log.Info("refreshed access token", "expiry", time.UnixMilli(int64(newExpiry)).UTC())
	} else {
		logger.Log.Info("refreshed access token", "expiry", "unknown")
	}
	return set
}

// Apply returns the request cookies as they will be after the browser
// processes set: same-name cookies are replaced, expired ones removed.
func Apply(cookies []*http.Cookie, set []*http.Cookie) []*http.Cookie {
	if len(set) == 0 {
		return cookies
	}
	byName := make(map[string]*http.Cookie, len(set))
	for _, s := range set {
		byName[s.Name] = s
	}

	out := make([]*http.Cookie, 0, len(cookies)+len(set))
	for _, c := range cookies {
		if _, replaced := byName[c.Name]; !replaced {
			out = append(out, c)
		}
	}
	for _, s := range set {
		if s.MaxAge < 0 || s.Value == "" {
			continue
		}
		out = append(out, &http.Cookie{Name: s.Name, Value: s.Value})
	}
	return out
}
