package api_test

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL   = "http://localhost:8080/api/v1"
	serverUp  bool
	authToken string
)

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(baseURL + "/health/live")
	if err != nil {
		return fmt.Errorf("API server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %d", resp.StatusCode)
	}
	return nil
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_URL"); url != "" {
		baseURL = url + "/api/v1"
	}

	if err := checkAPIServer(); err != nil {
		fmt.Printf("Skipping API tests: %v\n", err)
	} else {
		serverUp = true
		setupAuth()
	}

	os.Exit(m.Run())
}

// requireServer skips the test when no live server is available, so the
// suite stays green in unit-test-only environments.
func requireServer(t *testing.T) {
	t.Helper()
	if !serverUp {
		t.Skip("API server not running")
	}
	if authToken == "" {
		t.Skip("auth setup failed")
	}
}

func setupAuth() {
	email := uniqueName("admin") + "@example.com"
	password := "test-password-123"

	registerResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"name":     "Test Admin",
		"email":    email,
		"password": password,
		"role":     "admin",
	}, "")
	if !registerResp.IsSuccess() {
		fmt.Printf("Failed to register test user: %s\n", registerResp.Message)
		return
	}

	loginResp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	if !loginResp.IsSuccess() {
		fmt.Printf("Failed to log in test user: %s\n", loginResp.Message)
		return
	}
	authToken = loginResp.GetString("access_token")
}
