package ratelimit

import "strings"

// MatchEndpoint returns the first endpoint config matching method and path,
// or nil. GET /health is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasPrefix(path, c.Prefix) {
			continue
		}
		if c.Suffix != "" && !strings.HasSuffix(path, c.Suffix) {
			continue
		}
		return c
	}
	return nil
}
