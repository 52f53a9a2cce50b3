package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories/mock"
	"github.com/reelclub/leads-backend/src/services"
)

func setupUserRouter(t *testing.T, repo *mock.AccountRepository) *gin.Engine {
	t.Helper()
	initTestJWT(t)

	accountService := services.NewAccountServiceWithRepo(repo, []string{"admin1", "admin2"})
	handler := NewUserHandler(accountService)

	router := newTestRouter()
	users := router.Group("/api/users", middleware.RequireAuth(), middleware.RequireRoles(models.RoleAdmin))
	users.GET("", handler.HandleList)
	users.POST("", handler.HandleCreate)
	users.PUT("/:id", handler.HandleUpdate)
	users.DELETE("/:id", handler.HandleDelete)
	users.PATCH("/:id/permissions", handler.HandleSetPermissions)
	return router
}

func TestUserRoutes_RejectNonAdmin(t *testing.T) {
	router := setupUserRouter(t, mock.NewAccountRepository())
	token := issueTestToken(t, 2, "dept_lead", models.RoleLead, true)

	requests := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodPatch, "/api/users/1/permissions"},
	}

	for _, r := range requests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(r.method, r.path, bytes.NewBufferString(`{"username":"x","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403 for non-admin, got %d", r.method, r.path, w.Code)
		}
	}
}

func TestUserCreate_Success(t *testing.T) {
	repo := mock.NewAccountRepository()
	repo.CreateFunc = func(ctx context.Context, account *models.Account) error {
		account.ID = 10
		return nil
	}
	router := setupUserRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		bytes.NewBufferString(`{"username":"test_lead_99","password":"password123","role":"lead"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusCreated)
	response := decodeJSON(t, w)
	if response["username"] != "test_lead_99" {
		t.Errorf("expected username test_lead_99, got %v", response["username"])
	}
	if _, hasHash := response["passwordHash"]; hasHash {
		t.Error("password hash must never appear in responses")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	repo := mock.NewAccountRepository()
	repo.CreateFunc = func(ctx context.Context, account *models.Account) error {
		return &pgconn.PgError{Code: "23505"}
	}
	router := setupUserRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		bytes.NewBufferString(`{"username":"admin1","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusConflict)
	assertJSONError(t, w, "username already exists")
}

func TestUserDelete_ProtectedAccount(t *testing.T) {
	repo := mock.NewAccountRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int64) (*models.Account, error) {
		return &models.Account{ID: id, Username: "admin2", Role: models.RoleAdmin}, nil
	}
	router := setupUserRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusForbidden)
}

func TestUserDelete_NotFound(t *testing.T) {
	repo := mock.NewAccountRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int64) (*models.Account, error) {
		return nil, pgx.ErrNoRows
	}
	router := setupUserRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/404", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusNotFound)
}

func TestUserSetPermissions_TogglesFlag(t *testing.T) {
	repo := mock.NewAccountRepository()
	repo.SetReviewAccessFunc = func(ctx context.Context, id int64, canViewReviews bool) (*models.Account, error) {
		return &models.Account{ID: id, Username: "test_lead_99", Role: models.RoleLead, CanViewReviews: canViewReviews}, nil
	}
	router := setupUserRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/users/3/permissions",
		bytes.NewBufferString(`{"canViewReviews":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusOK)
	response := decodeJSON(t, w)
	if response["canViewReviews"] != true {
		t.Errorf("expected canViewReviews true, got %v", response["canViewReviews"])
	}
}

func TestUserUpdate_InvalidID(t *testing.T) {
	router := setupUserRouter(t, mock.NewAccountRepository())
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/not-a-number",
		bytes.NewBufferString(`{"username":"renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusBadRequest)
}
