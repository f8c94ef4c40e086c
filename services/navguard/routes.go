package navguard

import "strings"

type Route struct {
	Path  string
	Name  string
	Title string
	// gated on the admin session domain
	RequiresAdmin bool
}

const (
	RouteMarketplace   = "Marketplace"
	RouteProductDetail = "ProductDetail"
	RouteFavorites     = "Favorites"
	RouteUserLogin     = "UserLogin"
	RouteUserRegister  = "UserRegister"
	RouteAdminLogin    = "AdminLogin"
	RouteTasks         = "Tasks"
	RouteAccounts      = "Accounts"
	RouteResults       = "Results"
	RouteLogs          = "Logs"
	RouteSettings      = "Settings"
)

const (
	adminLoginPath = "/admin/login"
	adminHomePath  = "/admin/tasks"
)

var routes = []Route{
	{Path: "/", Name: RouteMarketplace, Title: "Home"},
	{Path: "/products/", Name: RouteProductDetail, Title: "Product Details"},
	{Path: "/favorites", Name: RouteFavorites, Title: "My Favorites"},
	{Path: "/user/login", Name: RouteUserLogin, Title: "User Login"},
	{Path: "/user/register", Name: RouteUserRegister, Title: "Register"},
	{Path: adminLoginPath, Name: RouteAdminLogin, Title: "Admin Login"},
	{Path: adminHomePath, Name: RouteTasks, Title: "Task Management", RequiresAdmin: true},
	{Path: "/admin/accounts", Name: RouteAccounts, Title: "Account Management", RequiresAdmin: true},
	{Path: "/admin/results", Name: RouteResults, Title: "Results", RequiresAdmin: true},
	{Path: "/admin/logs", Name: RouteLogs, Title: "Run Logs", RequiresAdmin: true},
	{Path: "/admin/settings", Name: RouteSettings, Title: "System Settings", RequiresAdmin: true},
}

// Lookup resolves a path to its route metadata. The product-detail
// route matches any id under its prefix, everything else is exact.
func Lookup(path string) (Route, bool) {
	path = normalize(path)
	for _, route := range routes {
		if route.Name == RouteProductDetail {
			if strings.HasPrefix(path, route.Path) && path != route.Path {
				return route, true
			}
			continue
		}
		if path == route.Path {
			return route, true
		}
	}
	return Route{}, false
}

func normalize(path string) string {
	// the guard sees only the path component
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
