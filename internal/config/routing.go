package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// UpstreamConfig defines where the proxy gateway forwards requests.
//
// YAML Location: ~/.pipewatch/config.yaml under "upstream" key
//
// Example:
//
//	upstream:
//	  origin: https://edge-api.internal:8443
//	  verify_tls: false
//	  timeout: 30s
//	  routes:
//	    - path: /api/pipelines
//	      upstream_path: /api/v1/pipelines
type UpstreamConfig struct {
	// Origin is scheme://host[:port] of the upstream API. Required.
	Origin string `yaml:"origin" json:"origin"`

	// VerifyTLS enables certificate verification against the upstream.
	// Off by default because edge APIs commonly use self-signed certificates.
	VerifyTLS bool `yaml:"verify_tls" json:"verify_tls"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Routes maps local paths onto upstream paths. Empty means DefaultRoutes.
	Routes []RouteConfig `yaml:"routes,omitempty" json:"routes,omitempty"`
}

// RouteConfig maps one local path to one upstream path.
type RouteConfig struct {
	// Path is the local path served by pipewatch, e.g. /api/pipelines.
	Path string `yaml:"path" json:"path"`

	// UpstreamPath is the path requested on the upstream origin.
	UpstreamPath string `yaml:"upstream_path" json:"upstream_path"`
}

// Local paths of the built-in routes.
const (
	RoutePipelines = "/api/pipelines"
	RouteDevices   = "/api/devices"
)

// DefaultRoutes returns the built-in pipeline and device routes.
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Path: RoutePipelines, UpstreamPath: "/api/v1/pipelines"},
		{Path: RouteDevices, UpstreamPath: "/api/v1/devices"},
	}
}

// Validate performs structural validation of the upstream configuration.
// It checks the origin is an absolute http(s) URL without a path, and that
// every route has absolute, unique local paths.
func (u *UpstreamConfig) Validate() error {
	if u == nil {
		return nil
	}

	origin, err := url.Parse(u.Origin)
	if err != nil || (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOrigin, u.Origin)
	}
	if strings.Trim(origin.Path, "/") != "" {
		return fmt.Errorf("%w: %q must not carry a path", ErrInvalidOrigin, u.Origin)
	}

	seen := make(map[string]bool, len(u.Routes))
	for i, route := range u.Routes {
		if err = validateRoute(i, route); err != nil {
			return err
		}
		if seen[route.Path] {
			return fmt.Errorf("route %q: duplicate path", route.Path)
		}
		seen[route.Path] = true
	}

	return nil
}

func validateRoute(index int, route RouteConfig) error {
	if route.Path == "" {
		return fmt.Errorf("route at index %d: path is required", index)
	}
	if !strings.HasPrefix(route.Path, "/") {
		return fmt.Errorf("route %q: path must start with /", route.Path)
	}
	if route.Path == DefaultHealthPath {
		return fmt.Errorf("route %q: path is reserved for the health endpoint", route.Path)
	}
	if !strings.HasPrefix(route.UpstreamPath, "/") {
		return fmt.Errorf("route %q: upstream_path must start with /, got %q", route.Path, route.UpstreamPath)
	}
	return nil
}
