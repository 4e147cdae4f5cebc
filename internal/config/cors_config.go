package config

import (
	"sort"
	"strings"
)

type Cors struct {
	allowedOrigins AllowedOrigins
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// ParseAllowedOrigins reads a comma separated origin list
func ParseAllowedOrigins(raw string) AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return c.allowedOrigins
}

func (Cors) GetAllowedMethods() string {
	return "GET, HEAD, POST, PUT, PATCH, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
