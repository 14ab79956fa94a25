package service

import (
	"strings"

	"deyelegliz/pkg/errors"
)

const (
	RouteRoot       = "/"
	RouteSplash     = "/splash"
	RouteAuth       = "/auth"
	RouteOnboarding = "/onboarding"
	RouteHome       = "/home"
	RouteMarket     = "/market"
	RouteRequests   = "/requests"
	RouteFood       = "/food"
	RouteAccount    = "/account"
	RouteMerchant   = "/merchant"
)

type AuthStatus string

const (
	AuthUnresolved AuthStatus = "unresolved"
	AuthLoggedOut  AuthStatus = "logged_out"
	AuthLoggedIn   AuthStatus = "logged_in"
)

// AuthState is the resolved session for one gate evaluation.
type AuthState struct {
	Status        AuthStatus
	UID           string
	ProfileExists bool
}

type GateInput struct {
	OnboardingComplete bool
	Auth               AuthState
	Route              string
}

type GateAction string

const (
	GateRender       GateAction = "render"
	GateRedirect     GateAction = "redirect"
	GateLoading      GateAction = "loading"
	GateSessionError GateAction = "session_error"
)

type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var BottomNav = []NavItem{
	{Label: "Akèy", Href: RouteRoot},
	{Label: "Mache", Href: RouteMarket},
	{Label: "Demand", Href: RouteRequests},
	{Label: "Manje", Href: RouteFood},
	{Label: "Kont", Href: RouteAccount},
}

type GateDecision struct {
	Action        GateAction `json:"action"`
	Route         string     `json:"route"`
	RedirectTo    string     `json:"redirect_to,omitempty"`
	ShowBottomNav bool       `json:"show_bottom_nav"`
	NavItems      []NavItem  `json:"nav_items,omitempty"`
	ErrorCode     string     `json:"error_code,omitempty"`
}

// NormalizeRoute drops query, fragment and trailing slashes.
func NormalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	for len(route) > 1 && strings.HasSuffix(route, "/") {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}

func isChromeFree(route string) bool {
	return route == RouteSplash || route == RouteAuth || route == RouteOnboarding
}

func hasPrefixRoute(route, prefix string) bool {
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}

// RequiresProfile lists screens that read the caller's profile document.
func RequiresProfile(route string) bool {
	return hasPrefixRoute(route, RouteAccount) || hasPrefixRoute(route, RouteMerchant)
}

// Decide evaluates the gate. Onboarding is checked first because the flag is
// local and known even while the auth session is still resolving.
func Decide(in GateInput) GateDecision {
	route := NormalizeRoute(in.Route)
	d := GateDecision{Route: route}

	switch {
	case !in.OnboardingComplete && route != RouteOnboarding:
		d.Action = GateRedirect
		d.RedirectTo = RouteOnboarding
	case in.Auth.Status == AuthUnresolved:
		d.Action = GateLoading
	case in.Auth.Status == AuthLoggedOut && !isChromeFree(route):
		d.Action = GateRedirect
		d.RedirectTo = RouteAuth
	case in.Auth.Status == AuthLoggedIn && (route == RouteSplash || route == RouteAuth):
		d.Action = GateRedirect
		d.RedirectTo = RouteHome
	case in.Auth.Status == AuthLoggedIn && !in.Auth.ProfileExists && RequiresProfile(route):
		d.Action = GateSessionError
		d.ErrorCode = errors.CodeProfileMissing
	default:
		d.Action = GateRender
		if in.Auth.Status == AuthLoggedIn && !isChromeFree(route) {
			d.ShowBottomNav = true
			d.NavItems = BottomNav
		}
	}
	return d
}
