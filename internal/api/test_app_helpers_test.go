package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/storage"
	"github.com/terraincognita07/ruralhealth/internal/storage/memory"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	app     *fiber.App
	handler *Handler
	store   *storage.Store
}

func newTestEnv(t *testing.T, enforceAuth bool) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	handler, err := NewHandler(store, Options{
		SecretKey:   testSecretKey,
		EnforceAuth: enforceAuth,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	if _, _, err := handler.Auth().EnsureAdmin(context.Background(), services.AdminSeed{
		Username: "admin",
		Email:    "admin@ruralhealthtracker.com",
		Password: "admin123",
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	return &testEnv{
		app:     NewApp(handler, AppOptions{AccessLog: true}),
		handler: handler,
		store:   store,
	}
}

func (env *testEnv) do(t *testing.T, method string, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch typed := body.(type) {
		case string:
			reader = bytes.NewBufferString(typed)
		default:
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("encode request body: %v", err)
			}
			reader = bytes.NewReader(encoded)
		}
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, payload
}

func (env *testEnv) register(t *testing.T, username string, email string) (map[string]any, string) {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"username":    username,
		"email":       email,
		"password":    "p",
		"firstName":   "A",
		"lastName":    "B",
		"gender":      "F",
		"dateOfBirth": "2000-01-01",
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, status, body)
	}

	payload := decodeObject(t, body)
	user, ok := payload["user"].(map[string]any)
	if !ok {
		t.Fatalf("register response missing user: %s", body)
	}
	token, _ := payload["token"].(string)
	return user, token
}

func (env *testEnv) login(t *testing.T, username string, password string) string {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, status, body)
	}
	token, _ := decodeObject(t, body)["token"].(string)
	if token == "" {
		t.Fatalf("login %s: missing token in %s", username, body)
	}
	return token
}

func decodeObject(t *testing.T, body []byte) map[string]any {
	t.Helper()

	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
	return payload
}

func decodeList(t *testing.T, body []byte) []map[string]any {
	t.Helper()

	payload := []map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response list %q: %v", body, err)
	}
	return payload
}

func readAPIMessage(t *testing.T, body []byte) string {
	t.Helper()

	message, _ := decodeObject(t, body)["message"].(string)
	return message
}

func numberField(t *testing.T, payload map[string]any, key string) int {
	t.Helper()

	value, ok := payload[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %s in %v", key, payload)
	}
	return int(value)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
