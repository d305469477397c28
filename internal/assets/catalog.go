package assets

// DefaultModules is the built-in stylesheet catalog for event, artist and
// location listings. Order matters: the Base phase emits auto modules in
// this order.
func DefaultModules() []Module {
	return []Module{
		// Always-on base layers.
		{Name: "base", Resource: "css/base.css", Auto: true},
		{Name: "typography", Resource: "css/typography.css", Dependencies: []string{"base"}, Auto: true},

		// Shared building blocks.
		{Name: "components", Resource: "css/components.css", Dependencies: []string{"base"}},
		{Name: "pagination", Resource: "css/pagination.css", Dependencies: []string{"components"}},
		{Name: "search", Resource: "css/search.css", Dependencies: []string{"components"}},
		{Name: "map", Resource: "css/map.css", Dependencies: []string{"base"}},

		// Events.
		{Name: "events-list", Resource: "css/events-list.css", Dependencies: []string{"components", "pagination"}},
		{Name: "event-single", Resource: "css/event-single.css", Dependencies: []string{"components", "map"}},
		{Name: "calendar", Resource: "css/calendar.css", Dependencies: []string{"components"}},
		{Name: "booking-form", Resource: "css/booking-form.css", Dependencies: []string{"components"}},

		// Artists.
		{Name: "artists-list", Resource: "css/artists-list.css", Dependencies: []string{"components", "pagination"}},
		{Name: "artist-single", Resource: "css/artist-single.css", Dependencies: []string{"components"}},

		// Locations.
		{Name: "locations-list", Resource: "css/locations-list.css", Dependencies: []string{"components", "pagination", "map"}},
		{Name: "location-single", Resource: "css/location-single.css", Dependencies: []string{"components", "map"}},
	}
}

// DefaultLayouts maps themes to their layout stylesheet.
func DefaultLayouts() map[string]string {
	return map[string]string{
		DefaultLayoutTheme:  "css/layouts/default.css",
		"twentytwentyfour":  "css/layouts/twentytwentyfour.css",
		"twentytwentythree": "css/layouts/twentytwentythree.css",
		"astra":             "css/layouts/astra.css",
	}
}

// DefaultRegistry builds the built-in registry.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultModules(),
		WithLegacy(DefaultLegacyModule()),
		WithLayouts(DefaultLayouts()),
		WithContexts(DefaultContexts()),
	)
}
