package utils

import (
	"fmt"
	"strings"
)

// ParseSpec normalizes a single compiler spec into the "%name@version" form
// the installer expects. A missing leading '%' is tolerated on input.
func ParseSpec(s string) (string, error) {
	spec := strings.TrimSpace(s)
	spec = strings.TrimPrefix(spec, "%")

	if spec == "" {
		return "", fmt.Errorf("empty compiler spec")
	}

	name, version, found := strings.Cut(spec, "@")
	if !found || name == "" || version == "" {
		return "", fmt.Errorf("invalid compiler spec %q: expected %%<compiler>@<version>", s)
	}

	return "%" + name + "@" + version, nil
}

// ParseSpecs normalizes an ordered list of compiler specs. Order is
// preserved and duplicates are passed through untouched.
func ParseSpecs(specs []string) ([]string, error) {
	parsed := make([]string, 0, len(specs))

	for _, s := range specs {
		spec, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}

		parsed = append(parsed, spec)
	}

	return parsed, nil
}
