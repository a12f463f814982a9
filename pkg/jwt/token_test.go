package jwtPkg

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerify(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	token, exp, err := Sign(map[string]interface{}{"id": "op-1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if exp <= time.Now().Unix() {
		t.Errorf("exp = %d, want future", exp)
	}

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{name: "valid", header: "Bearer " + token},
		{name: "missing", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic " + token, wantErr: true},
		{name: "tampered", header: "Bearer " + token + "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var claims jwt.MapClaims
			var verifyErr error
			app.Get("/", func(c *fiber.Ctx) error {
				tok, err := VerifyTokenHeader(c, "JWT_ACCESS_TOKEN_SECRET")
				verifyErr = err
				if err == nil {
					claims, _ = tok.Claims.(jwt.MapClaims)
				}
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if (verifyErr != nil) != tt.wantErr {
				t.Fatalf("VerifyTokenHeader() error = %v, wantErr %v", verifyErr, tt.wantErr)
			}
			if !tt.wantErr && claims["id"] != "op-1" {
				t.Errorf("claims[id] = %v, want op-1", claims["id"])
			}
		})
	}
}

func TestSignWithoutSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "")
	if _, _, err := Sign(nil, time.Minute); err == nil {
		t.Error("Sign() without secret should fail")
	}
}
