package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, claims TokenClaims) string {
	t.Helper()
	token, err := SignJWT(testSecret, claims)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestVerifyJWTRoundTrip(t *testing.T) {
	token := mintToken(t, TokenClaims{
		Sub:    "user-1",
		Locale: "id",
		Exp:    time.Now().Add(time.Hour).Unix(),
	})
	claims, err := VerifyJWT(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() error = %v", err)
	}
	if claims.Sub != "user-1" || claims.Locale != "id" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != TokenIssuer {
		t.Fatalf("issuer = %q, want %q", claims.Issuer, TokenIssuer)
	}
}

func TestVerifyJWTRejects(t *testing.T) {
	valid := mintToken(t, TokenClaims{Sub: "user-1", Exp: time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.token.at.all"},
		{"tampered signature", valid[:len(valid)-2] + "xx"},
		{"expired", mintToken(t, TokenClaims{Sub: "user-1", Exp: time.Now().Add(-time.Minute).Unix()})},
		{"wrong issuer", mintToken(t, TokenClaims{Sub: "user-1", Issuer: "someone-else", Exp: time.Now().Add(time.Hour).Unix()})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VerifyJWT(testSecret, tc.token); err == nil {
				t.Fatal("expected verification to fail")
			}
		})
	}
}

func TestAuthJWTMiddleware(t *testing.T) {
	handler := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := UserIDFromContext(r.Context()); got != "user-1" {
			t.Fatalf("user id in context = %q", got)
		}
		if got := LocaleFromContext(r.Context()); got != "id" {
			t.Fatalf("locale in context = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	token := mintToken(t, TokenClaims{Sub: "user-1", Locale: "id", Exp: time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}

	for _, header := range []string{"", "Basic abc", "Bearer invalid"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}
