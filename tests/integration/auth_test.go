package integration

import (
	"net/http"
	"testing"
)

func TestLoginFlow(t *testing.T) {
	app := setupApp(t)

	t.Run("correct passphrase yields a usable token", func(t *testing.T) {
		token := app.login(t)

		rec := app.request("GET", "/api/v1/targets", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong passphrase is rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login", `{"passphrase":"guess"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		errObj := result["error"].(map[string]interface{})
		if errObj["code"] != "INVALID_CREDENTIALS" {
			t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
		}
	})

	t.Run("protected routes reject missing token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/budgets", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("protected routes reject garbage token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/budgets", "", "not-a-token")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
