package uberenv

import "fmt"

// Site describes one fixed lab machine fleet: where its third-party
// libraries are installed and which compiler specs get built there. The
// spec order defines the install order.
type Site struct {
	Name      string
	BuildsDir string
	Specs     []string
}

var sites = []Site{
	{
		Name:      "cz-toss3",
		BuildsDir: "/usr/workspace/wsa/calder/thirdparty_libs/builds",
		Specs: []string{
			"%clang@3.9.0",
			"%gcc@4.9.3",
			"%intel@16.0.4",
			"%intel@17.0.0",
		},
	},
	{
		Name:      "rz-chaos5",
		BuildsDir: "/usr/workspace/wsrzc/calder/thirdparty_libs/builds",
		Specs: []string{
			"%clang@3.9.1",
			"%clang@4.0.1",
			"%gcc@4.9.3",
			"%intel@15.0.223",
			"%intel@16.0.258",
			"%intel@17.0.174",
		},
	},
}

// Sites returns the known fleet sites
func Sites() []Site {
	return sites
}

// LookupSite finds a fleet site by name
func LookupSite(name string) (*Site, error) {
	for i := range sites {
		if sites[i].Name == name {
			return &sites[i], nil
		}
	}

	return nil, fmt.Errorf("unknown site %q", name)
}
