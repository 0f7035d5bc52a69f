//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

const defaultHTTPBase = "http://localhost:4000"

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	base := os.Getenv("CHIRPER_HTTP_URL")
	if base == "" {
		base = defaultHTTPBase
	}
	return &httpClient{
		baseURL: base,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *httpClient) do(t *testing.T, method, path, accessToken string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("http request failed: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	return resp, bodyBytes
}

func (c *httpClient) postJSON(t *testing.T, path string, body any) (*http.Response, []byte) {
	return c.do(t, http.MethodPost, path, "", body)
}

func waitForHTTP(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}
	for time.Now().Before(deadline) {
		req, _ := http.NewRequest(http.MethodPost, baseURL+"/users/login", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusUnprocessableEntity {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("http service not ready at %s", baseURL)
}

func TestAccountE2E_HTTPFlow(t *testing.T) {
	client := newHTTPClient()
	if err := waitForHTTP(client.baseURL, 30*time.Second); err != nil {
		t.Skipf("skipping e2e: %v", err)
	}

	state := struct {
		email        string
		password     string
		accessToken  string
		refreshToken string
	}{
		email:    fmt.Sprintf("e2e+%d@example.com", time.Now().UnixNano()),
		password: "StrongPass1!",
	}

	abort := false
	fail := func(t *testing.T, format string, args ...any) {
		abort = true
		t.Fatalf(format, args...)
	}

	step := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			if abort {
				t.Skip("previous step failed")
			}
			fn(t)
		})
	}

	step("LoginBeforeRegister", func(t *testing.T) {
		resp, _ := client.postJSON(t, "/users/login", map[string]string{
			"email":    state.email,
			"password": state.password,
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			fail(t, "expected login before register to fail with 422, got %d", resp.StatusCode)
		}
	})

	step("Register", func(t *testing.T) {
		resp, body := client.postJSON(t, "/users/register", map[string]string{
			"name":             "E2E User",
			"email":            state.email,
			"password":         state.password,
			"confirm_password": state.password,
			"date_of_birth":    "1990-01-01",
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "register status: %d body: %s", resp.StatusCode, string(body))
		}

		var regRes struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(body, &regRes); err != nil {
			fail(t, "register unmarshal failed: %v", err)
		}
		if regRes.AccessToken == "" || regRes.RefreshToken == "" {
			fail(t, "expected access and refresh tokens")
		}
		state.accessToken = regRes.AccessToken
		state.refreshToken = regRes.RefreshToken
	})

	step("RegisterDuplicate", func(t *testing.T) {
		resp, _ := client.postJSON(t, "/users/register", map[string]string{
			"name":             "E2E User",
			"email":            state.email,
			"password":         state.password,
			"confirm_password": state.password,
			"date_of_birth":    "1990-01-01",
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			fail(t, "expected duplicate register to fail with 422, got %d", resp.StatusCode)
		}
	})

	step("RegisterWeakPassword", func(t *testing.T) {
		resp, _ := client.postJSON(t, "/users/register", map[string]string{
			"name":             "Weak",
			"email":            "weak-" + state.email,
			"password":         "short",
			"confirm_password": "short",
			"date_of_birth":    "1990-01-01",
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			fail(t, "expected weak password register to fail with 422, got %d", resp.StatusCode)
		}
	})

	step("GetMe", func(t *testing.T) {
		resp, body := client.do(t, http.MethodGet, "/users/me", state.accessToken, nil)
		if resp.StatusCode != http.StatusOK {
			fail(t, "get me status: %d body: %s", resp.StatusCode, string(body))
		}

		var meRes struct {
			Result struct {
				Email string `json:"email"`
			} `json:"result"`
		}
		if err := json.Unmarshal(body, &meRes); err != nil {
			fail(t, "get me unmarshal failed: %v", err)
		}
		if meRes.Result.Email != state.email {
			fail(t, "expected email %s, got %s", state.email, meRes.Result.Email)
		}
	})

	step("GetMeWithoutToken", func(t *testing.T) {
		resp, _ := client.do(t, http.MethodGet, "/users/me", "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			fail(t, "expected 401 without token, got %d", resp.StatusCode)
		}
	})

	step("Login", func(t *testing.T) {
		resp, body := client.postJSON(t, "/users/login", map[string]string{
			"email":    state.email,
			"password": state.password,
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "login status: %d body: %s", resp.StatusCode, string(body))
		}
	})

	step("RefreshTokenRotates", func(t *testing.T) {
		resp, body := client.postJSON(t, "/users/refresh-token", map[string]string{
			"refresh_token": state.refreshToken,
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "refresh status: %d body: %s", resp.StatusCode, string(body))
		}

		var refreshRes struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(body, &refreshRes); err != nil {
			fail(t, "refresh unmarshal failed: %v", err)
		}
		if refreshRes.RefreshToken == "" || refreshRes.RefreshToken == state.refreshToken {
			fail(t, "expected a rotated refresh token")
		}

		// The presented token was revoked during rotation.
		resp, _ = client.postJSON(t, "/users/refresh-token", map[string]string{
			"refresh_token": state.refreshToken,
		})
		if resp.StatusCode != http.StatusUnauthorized {
			fail(t, "expected revoked refresh token to fail with 401, got %d", resp.StatusCode)
		}

		state.accessToken = refreshRes.AccessToken
		state.refreshToken = refreshRes.RefreshToken
	})

	step("Logout", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/users/logout", state.accessToken, map[string]string{
			"refresh_token": state.refreshToken,
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "logout status: %d body: %s", resp.StatusCode, string(body))
		}

		resp, _ = client.postJSON(t, "/users/refresh-token", map[string]string{
			"refresh_token": state.refreshToken,
		})
		if resp.StatusCode != http.StatusUnauthorized {
			fail(t, "expected logged-out refresh token to fail with 401, got %d", resp.StatusCode)
		}
	})
}
