package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFuncExplicitProxies(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.example:3128", "http://sproxy.example:3128", "")

	httpReq := httptest.NewRequest(http.MethodGet, "http://target.example/", nil)
	u, err := proxy(httpReq)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.example:3128", u.Host)

	httpsReq := httptest.NewRequest(http.MethodGet, "https://target.example/", nil)
	u, err = proxy(httpsReq)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "sproxy.example:3128", u.Host)
}

func TestNewProxyFuncHonorsNoProxy(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.example:3128", "", "target.example")

	req := httptest.NewRequest(http.MethodGet, "http://target.example/", nil)
	u, err := proxy(req)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestNewProxyFuncDefaultsToEnvironment(t *testing.T) {
	proxy := NewProxyFunc("", "", "")
	assert.NotNil(t, proxy)
}
