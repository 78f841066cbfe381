package domain

import "strings"

// Screen identifies a navigable top-level section of the portal. Screens are
// path-shaped so route authorization can match request paths by prefix.
type Screen string

const (
	ScreenHome          Screen = "/"
	ScreenLogin         Screen = "/login"
	ScreenRegister      Screen = "/register"
	ScreenProducts      Screen = "/products"
	ScreenVendors       Screen = "/vendors"
	ScreenCart          Screen = "/cart"
	ScreenOrders        Screen = "/orders"
	ScreenCatalog       Screen = "/catalog"
	ScreenQuotes        Screen = "/quotes"
	ScreenStaff         Screen = "/staff"
	ScreenSubscription  Screen = "/subscription"
	ScreenNotifications Screen = "/notifications"
	ScreenCustomers     Screen = "/customers"
	ScreenSuppliers     Screen = "/suppliers"
	ScreenCategories    Screen = "/categories"
	ScreenSubscriptions Screen = "/subscriptions"
	ScreenApprovals     Screen = "/approvals"
	ScreenProfile       Screen = "/profile"
	ScreenSupport       Screen = "/support"
)

// publicScreens are reachable without a session.
var publicScreens = map[Screen]struct{}{
	ScreenLogin:    {},
	ScreenRegister: {},
}

// roleScreens fixes the per-role whitelist, in navigation order. Staff roles
// derive from their owner set (ownerOnlyScreens removed) so the staff set is
// a subset of the owner set by construction.
var roleScreens = map[Role][]Screen{
	RoleSuperAdmin: {
		ScreenHome, ScreenCustomers, ScreenSuppliers, ScreenCategories,
		ScreenSubscriptions, ScreenApprovals, ScreenProfile, ScreenSupport,
	},
	RoleAdmin: {
		ScreenHome, ScreenCustomers, ScreenSuppliers, ScreenCategories,
		ScreenSubscriptions, ScreenApprovals, ScreenProfile, ScreenSupport,
	},
	RoleCustomerOwner: {
		ScreenHome, ScreenProducts, ScreenVendors, ScreenCart, ScreenOrders,
		ScreenStaff, ScreenSubscription, ScreenNotifications, ScreenProfile,
		ScreenSupport,
	},
	RoleSupplierOwner: {
		ScreenHome, ScreenCatalog, ScreenQuotes, ScreenOrders, ScreenStaff,
		ScreenSubscription, ScreenNotifications, ScreenProfile, ScreenSupport,
	},
}

// ownerOnlyScreens never appear in a staff whitelist.
var ownerOnlyScreens = map[Screen]struct{}{
	ScreenStaff:        {},
	ScreenSubscription: {},
}

// restrictedScreens is the subscription-gated set: an owner with an inactive
// subscription can reach exactly these.
var restrictedScreens = []Screen{ScreenSubscription, ScreenProfile, ScreenSupport}

// fallbackScreens is the minimal set for a missing or unknown role.
var fallbackScreens = []Screen{ScreenHome, ScreenProfile, ScreenSupport}

// IsPublic reports whether the screen is reachable without a session.
func (s Screen) IsPublic() bool {
	_, ok := publicScreens[s]
	return ok
}

// NormalizeScreen maps a requested path to its owning screen by longest
// matching prefix: "/orders/42/lines" normalizes to "/orders". Paths that
// match no known screen normalize to home.
func NormalizeScreen(path string) Screen {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return ScreenHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	seg := path
	if i := strings.Index(path[1:], "/"); i >= 0 {
		seg = path[:i+1]
	}
	for _, known := range allScreens {
		if Screen(seg) == known {
			return known
		}
	}
	return ScreenHome
}

// allScreens enumerates every known screen for normalization.
var allScreens = []Screen{
	ScreenLogin, ScreenRegister, ScreenProducts, ScreenVendors, ScreenCart,
	ScreenOrders, ScreenCatalog, ScreenQuotes, ScreenStaff,
	ScreenSubscription, ScreenNotifications, ScreenCustomers,
	ScreenSuppliers, ScreenCategories, ScreenSubscriptions, ScreenApprovals,
	ScreenProfile, ScreenSupport,
}
