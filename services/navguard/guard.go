// Package navguard decides whether a navigation target may be entered
// given the current admin session, mirroring the route guard of the
// marketplace UI.
package navguard

import (
	"net/url"

	"fleamarket-client/services/session"
)

const siteName = "Marketplace"

// Decision is the outcome of evaluating a navigation target. When
// RedirectTo is empty the target is entered as-is, otherwise the
// caller should navigate there instead. Title is always populated and
// names the page that will actually be shown.
type Decision struct {
	Route      Route
	RedirectTo string
	Title      string
}

func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

type Guard struct {
	admin *session.Store
}

func NewGuard(admin *session.Store) *Guard {
	return &Guard{admin: admin}
}

// Evaluate applies the admin gate to a target path. Unauthenticated
// access to an admin route redirects to the admin login page with the
// intended target carried in the "redirect" query parameter so the
// login flow can resume it. An already-authenticated admin visiting
// the login page is sent to the admin home instead. Unknown paths
// fall through to the marketplace root.
func (g *Guard) Evaluate(path string) Decision {
	route, ok := Lookup(path)
	if !ok {
		home, _ := Lookup("/")
		return Decision{Route: home, RedirectTo: "/", Title: pageTitle(home)}
	}

	if route.RequiresAdmin && !g.admin.IsAuthenticated() {
		login, _ := Lookup(adminLoginPath)
		query := url.Values{"redirect": {path}}
		return Decision{
			Route:      login,
			RedirectTo: adminLoginPath + "?" + query.Encode(),
			Title:      pageTitle(login),
		}
	}

	if route.Name == RouteAdminLogin && g.admin.IsAuthenticated() {
		home, _ := Lookup(adminHomePath)
		return Decision{Route: home, RedirectTo: adminHomePath, Title: pageTitle(home)}
	}

	return Decision{Route: route, Title: pageTitle(route)}
}

func pageTitle(route Route) string {
	if route.Title == "" {
		return siteName
	}
	return route.Title + " - " + siteName
}
