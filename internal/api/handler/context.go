package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ctxScope builds the caller's AccessScope from the claims injected by the
// Auth middleware, fast-failing before any service call:
//   - role must be canonical and non-empty (presence proves the middleware ran).
//   - client-scoped roles require a non-empty client_id; without it the JWT
//     is structurally valid but operationally unusable — reject with 401.
func ctxScope(c echo.Context) (domain.AccessScope, error) {
	rawRole, _ := c.Get("role").(string)
	role, ok := domain.CanonicalRole(rawRole)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	clientID, _ := c.Get("client_id").(string)
	if role.IsClientScoped() && clientID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return domain.NewAccessScope(role, userID, clientID), nil
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryTime parses a time query parameter, accepting RFC 3339 or a bare
// date. A bare date names the start of that day; with endOfDay it is advanced
// to the day's last instant so a date-only upper bound still covers the named
// day. Returns nil when absent, an error when malformed.
func queryTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.Validationf("%s must be RFC 3339 or YYYY-MM-DD", name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
