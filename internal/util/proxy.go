package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the proxy selector shared by the reasoning-service
// and filing-fetch HTTP clients. Explicitly configured proxy URLs take
// precedence; with none set, the standard proxy environment variables
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
