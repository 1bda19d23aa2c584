package session

// Link is one entry of the navigation header.
type Link struct {
	Label string
	Route string
}

// NavLinks returns the header links for the given session state.
func NavLinks(loggedIn bool) []Link {
	links := []Link{{Label: "Home", Route: "/"}}
	if loggedIn {
		return append(links,
			Link{Label: "Profile", Route: "/user-profile"},
			Link{Label: "Tracker", Route: "/expenses"},
			Link{Label: "Dashboard", Route: "/dashboard"},
		)
	}
	return append(links,
		Link{Label: "Login", Route: "/login"},
		Link{Label: "Get Started", Route: "/registration"},
	)
}
