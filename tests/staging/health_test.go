//go:build staging

package staging

import (
	"net/http"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz", "/version"} {
		resp, _ := makeRequest(t, "GET", path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, resp.StatusCode)
		}
	}
}
