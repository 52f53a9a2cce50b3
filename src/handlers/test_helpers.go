package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
)

// Test helpers for handler tests

// testJWTSecret is reused across handler tests (must be 32+ chars)
const testJWTSecret = "test-secret-for-handler-tests-32!"

// initTestJWT points the middleware at the test secret for one test
func initTestJWT(t *testing.T) {
	t.Helper()
	original := middleware.JWTSecret
	if err := middleware.SetJWTSecret(testJWTSecret); err != nil {
		t.Fatalf("SetJWTSecret failed: %v", err)
	}
	t.Cleanup(func() { middleware.JWTSecret = original })
}

// issueTestToken mints a token for a synthetic caller
func issueTestToken(t *testing.T, accountID int64, username string, role models.Role, canViewReviews bool) string {
	t.Helper()
	token, err := middleware.GenerateToken(accountID, username, string(role), canViewReviews, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

// newTestRouter creates a router in test mode
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// assertStatusCode checks if response status code matches expected
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode int) {
	t.Helper()
	if w.Code != expectedCode {
		t.Errorf("expected status %d, got %d: %s", expectedCode, w.Code, w.Body.String())
	}
}

// assertJSONError checks if response contains expected error message
func assertJSONError(t *testing.T, w *httptest.ResponseRecorder, expectedError string) {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response["error"] != expectedError {
		t.Errorf("expected error '%s', got '%v'", expectedError, response["error"])
	}
}

// decodeJSON parses a response body into a map
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return response
}
