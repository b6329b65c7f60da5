// Package guard gates page navigation before anything renders. The
// decision is pure: given the target path, whether the requester
// holds a session marker, and the execution environment, it either
// allows the navigation or names a redirect.
package guard

import (
	"net/http"
	"strings"
)

// MarkerCookie is the cookie treated as the session marker. It is
// primed by the CSRF endpoint and checked here without a server
// round-trip.
const MarkerCookie = "XSRF-TOKEN"

const (
	loginPath       = "/login"
	registerPath    = "/register"
	userLandingPath = "/dashboard"
	adminPrefix     = "/admin"
)

// RouteClass is the classification of a target path.
type RouteClass int

const (
	// RoutePublic requires no session: landing, login, register, about.
	RoutePublic RouteClass = iota
	// RouteAdmin is the admin section. The guard only checks for a
	// session marker; role enforcement stays at the API boundary.
	RouteAdmin
	// RouteAuthenticated is everything else, the user dashboard
	// included.
	RouteAuthenticated
)

// Decision is the outcome of a guard evaluation.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Classify assigns a path to exactly one route class.
func Classify(path string) RouteClass {
	switch {
	case path == "/",
		strings.HasPrefix(path, loginPath),
		strings.HasPrefix(path, registerPath),
		strings.HasPrefix(path, "/about"):
		return RoutePublic
	case strings.HasPrefix(path, adminPrefix):
		return RouteAdmin
	default:
		return RouteAuthenticated
	}
}

// Decide evaluates one navigation request.
//
// A requester who already holds a marker is bounced off the login and
// register pages to the dashboard. Without a marker, anything
// non-public redirects to login, except in development, where gating
// is bypassed entirely to ease iteration. The bypass is controlled by
// the environment flag and is unreachable in production builds.
//
// Admin paths get no role check here. Role enforcement for the admin
// section is deliberately deferred to the API boundary; the guard
// only answers "is there a session marker at all".
func Decide(path string, hasSessionMarker, isDevelopment bool) Decision {
	if hasSessionMarker && (path == loginPath || path == registerPath) {
		return redirect(userLandingPath)
	}

	if Classify(path) == RoutePublic {
		return allow()
	}

	if !hasSessionMarker && !isDevelopment {
		return redirect(loginPath)
	}

	return allow()
}

// Middleware applies Decide to incoming page requests, reading the
// marker cookie from the request.
func Middleware(isDevelopment bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasMarker := false
			if c, err := r.Cookie(MarkerCookie); err == nil && c.Value != "" {
				hasMarker = true
			}

			decision := Decide(r.URL.Path, hasMarker, isDevelopment)
			if !decision.Allow {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
