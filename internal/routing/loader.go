package routing

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Table is a validated, ordered route list. The first route whose method
// and path match exactly wins; the catch-all closes the list.
type Table struct {
	config *RouteConfig
}

// DefaultTable returns the site's built-in route table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultRoutes)
}

// LoadTable reads a route table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses and validates a YAML route table.
func ParseTable(data []byte) (*Table, error) {
	var config RouteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Table{config: &config}, nil
}

// Name returns the route group name.
func (t *Table) Name() string {
	return t.config.Metadata.Name
}

// Routes returns the routes in match order.
func (t *Table) Routes() []RouteDefinition {
	out := make([]RouteDefinition, len(t.config.Spec.Routes))
	copy(out, t.config.Spec.Routes)
	return out
}

// Match returns the route a request resolves to. The query string is not
// part of the match, and paths are compared exactly: "/about/" is not
// "/about". HEAD resolves like GET.
func (t *Table) Match(method, target string) RouteDefinition {
	path := target
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	method = strings.ToUpper(method)

	routes := t.config.Spec.Routes
	for _, route := range routes {
		if route.IsCatchAll() {
			return route
		}
		if route.Path == path && answers(route, method) {
			return route
		}
	}
	// Validate guarantees a trailing catch-all.
	return routes[len(routes)-1]
}

func answers(route RouteDefinition, method string) bool {
	m := route.GetMethod()
	return m == method || (method == http.MethodHead && m == http.MethodGet)
}

// Mount registers every route of table on engine. The catch-all becomes
// the engine's NoRoute handler. Redirects that would rewrite the request
// path are turned off so gin matches exactly like Match.
func Mount(engine *gin.Engine, table *Table, registry *HandlerRegistry) error {
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false

	var missing []error
	for _, route := range table.config.Spec.Routes {
		if !registry.HandlerExists(route.Handler) {
			missing = append(missing, fmt.Errorf("route %s: %w: %s", route.Path, ErrHandlerNotFound, route.Handler))
		}
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	for _, route := range table.config.Spec.Routes {
		handler, err := registry.Get(route.Handler)
		if err != nil {
			return fmt.Errorf("route %s: %w", route.Path, err)
		}

		if route.IsCatchAll() {
			engine.NoRoute(handler)
			continue
		}

		engine.Handle(route.GetMethod(), route.Path, handler)
		if route.GetMethod() == http.MethodGet {
			engine.Handle(http.MethodHead, route.Path, handler)
		}
	}
	return nil
}
