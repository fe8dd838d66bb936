package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"manager allowed", "manager", http.StatusOK},
		{"case insensitive", "MANAGER", http.StatusOK},
		{"staff rejected", "staff", http.StatusForbidden},
		{"no role rejected", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPrincipal Principal
			handler := RequireRole("admin", "manager")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPrincipal, _ = PrincipalFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/import/commit", nil)
			if tt.role != "" {
				req.Header.Set("X-User-Id", "u1")
				req.Header.Set("X-User-Name", "Grace")
				req.Header.Set("X-User-Role", tt.role)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotPrincipal.UserID != "u1" {
				t.Errorf("principal = %+v, want UserID u1", gotPrincipal)
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xRealIP    string
		xff        string
		trusted    []string
		want       string
	}{
		{
			name:       "trusted proxy with X-Real-IP",
			remoteAddr: "10.0.0.5:4321",
			xRealIP:    "203.0.113.9",
			trusted:    []string{"10.0.0.0/8"},
			want:       "203.0.113.9",
		},
		{
			name:       "trusted proxy with XFF chain",
			remoteAddr: "10.0.0.5:4321",
			xff:        "203.0.113.9, 10.0.0.1",
			trusted:    []string{"10.0.0.0/8"},
			want:       "203.0.113.9",
		},
		{
			name:       "untrusted client cannot spoof",
			remoteAddr: "198.51.100.7:4321",
			xRealIP:    "203.0.113.9",
			trusted:    []string{"10.0.0.0/8"},
			want:       "198.51.100.7:4321",
		},
		{
			name:       "bare IP accepted as trusted entry",
			remoteAddr: "127.0.0.1:9999",
			xRealIP:    "203.0.113.9",
			trusted:    []string{"127.0.0.1"},
			want:       "203.0.113.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
