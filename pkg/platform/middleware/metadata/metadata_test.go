package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, remote: "1.2.3.4:80", want: "10.0.0.1"},
		{name: "real ip header", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, remote: "1.2.3.4:80", want: "10.0.0.9"},
		{name: "ipv4 remote", remote: "1.2.3.4:5678", want: "1.2.3.4"},
		{name: "ipv6 remote", remote: "[::1]:5678", want: "::1"},
		{name: "no port", remote: "1.2.3.4", want: "1.2.3.4"},
		{name: "nothing", remote: "", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(r))
		})
	}
}

func TestClientMetadata(t *testing.T) {
	var ip, ua string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ip = GetClientIP(r.Context())
		ua = GetUserAgent(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:443"
	r.Header.Set("User-Agent", "ledger-cli/1.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.7", ip)
	assert.Equal(t, "ledger-cli/1.0", ua)
}
