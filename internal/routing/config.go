package routing

import (
	"fmt"
	"net/http"
	"strings"
)

// CatchAll is the path of the route that matches everything.
const CatchAll = "*"

// RouteConfig represents a complete route configuration file
type RouteConfig struct {
	APIVersion string        `yaml:"apiVersion"`
	Kind       string        `yaml:"kind"`
	Metadata   RouteMetadata `yaml:"metadata"`
	Spec       RouteSpec     `yaml:"spec"`
}

// RouteMetadata contains metadata about the route group
type RouteMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// RouteSpec defines the ordered route list
type RouteSpec struct {
	Routes []RouteDefinition `yaml:"routes"`
}

// RouteDefinition represents a single route
type RouteDefinition struct {
	Path        string `yaml:"path"`
	Method      string `yaml:"method"`
	Handler     string `yaml:"handler"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// IsCatchAll reports whether the route matches every path.
func (rd *RouteDefinition) IsCatchAll() bool {
	return rd.Path == CatchAll
}

// GetMethod returns the HTTP method, defaulting to GET.
func (rd *RouteDefinition) GetMethod() string {
	if rd.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(rd.Method)
}

// Validate checks if the route configuration is valid
func (rc *RouteConfig) Validate() error {
	if rc.APIVersion == "" {
		return fmt.Errorf("apiVersion is required")
	}
	if rc.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if rc.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}

	routes := rc.Spec.Routes
	if len(routes) == 0 {
		return fmt.Errorf("spec.routes is empty")
	}

	seen := make(map[string]int, len(routes))
	for i, route := range routes {
		if route.Path == "" {
			return fmt.Errorf("route[%d]: path is required", i)
		}
		if route.Handler == "" {
			return fmt.Errorf("route[%d]: handler is required", i)
		}
		if route.IsCatchAll() {
			if i != len(routes)-1 {
				return fmt.Errorf("route[%d]: catch-all must be the last route", i)
			}
			continue
		}
		if !strings.HasPrefix(route.Path, "/") {
			return fmt.Errorf("route[%d]: path %q must start with /", i, route.Path)
		}
		key := route.GetMethod() + " " + route.Path
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("route[%d]: %s duplicates route[%d]", i, key, prev)
		}
		seen[key] = i
	}

	if !routes[len(routes)-1].IsCatchAll() {
		return fmt.Errorf("spec.routes must end with a catch-all %q route", CatchAll)
	}
	return nil
}
