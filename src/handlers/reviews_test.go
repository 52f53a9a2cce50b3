package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories/mock"
	"github.com/reelclub/leads-backend/src/services"
)

func setupReviewRouter(t *testing.T, repo *mock.ReviewRepository) *gin.Engine {
	t.Helper()
	initTestJWT(t)

	handler := NewReviewHandler(services.NewReviewServiceWithRepo(repo))

	router := newTestRouter()
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	reviews := router.Group("/api/reviews")
	reviews.POST("/submit", handler.HandleSubmit)
	reviews.GET("", middleware.RequireAuth(), handler.HandleList)
	reviews.PATCH("/:id", middleware.RequireAuth(), adminOnly, handler.HandleUpdateStatus)
	reviews.DELETE("/:id", middleware.RequireAuth(), adminOnly, handler.HandleDelete)
	return router
}

func TestReviewSubmit_PublicEndpoint(t *testing.T) {
	repo := mock.NewReviewRepository()
	repo.CreateFunc = func(ctx context.Context, review *models.Review) error {
		review.ID = 1
		return nil
	}
	router := setupReviewRouter(t, repo)

	// No Authorization header at all
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/submit",
		bytes.NewBufferString(`{"userName":"Alex","comment":"Great night!","rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusCreated)
	response := decodeJSON(t, w)
	if response["status"] != "PENDING" {
		t.Errorf("expected status PENDING, got %v", response["status"])
	}
}

func TestReviewSubmit_InvalidRating(t *testing.T) {
	router := setupReviewRouter(t, mock.NewReviewRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/submit",
		bytes.NewBufferString(`{"userName":"Alex","comment":"hi","rating":9}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusBadRequest)
}

func TestReviewList_RequiresToken(t *testing.T) {
	router := setupReviewRouter(t, mock.NewReviewRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusUnauthorized)
}

func TestReviewList_PermissionGating(t *testing.T) {
	repo := mock.NewReviewRepository()
	repo.ListFunc = func(ctx context.Context) ([]*models.Review, error) {
		return []*models.Review{{ID: 1, UserName: "Alex", Status: models.ReviewStatusPending}}, nil
	}
	router := setupReviewRouter(t, repo)

	// Lead without the flag: 403
	token := issueTestToken(t, 3, "test_lead_99", models.RoleLead, false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assertStatusCode(t, w, http.StatusForbidden)

	// Same account with a fresh token carrying the flag: 200
	token = issueTestToken(t, 3, "test_lead_99", models.RoleLead, true)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assertStatusCode(t, w, http.StatusOK)

	// Admin without the flag: 200
	token = issueTestToken(t, 1, "admin1", models.RoleAdmin, false)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assertStatusCode(t, w, http.StatusOK)
}

func TestReviewUpdateStatus_AdminOnly(t *testing.T) {
	router := setupReviewRouter(t, mock.NewReviewRepository())
	token := issueTestToken(t, 3, "test_lead_99", models.RoleLead, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/1",
		bytes.NewBufferString(`{"status":"APPROVED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusForbidden)
}

func TestReviewUpdateStatus_InvalidTarget(t *testing.T) {
	router := setupReviewRouter(t, mock.NewReviewRepository())
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/1",
		bytes.NewBufferString(`{"status":"PENDING"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusBadRequest)
}

func TestReviewUpdateStatus_Moderates(t *testing.T) {
	repo := mock.NewReviewRepository()
	repo.UpdateStatusFunc = func(ctx context.Context, id int64, status models.ReviewStatus) (*models.Review, error) {
		return &models.Review{ID: id, UserName: "Alex", Status: status}, nil
	}
	router := setupReviewRouter(t, repo)
	token := issueTestToken(t, 1, "admin1", models.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/1",
		bytes.NewBufferString(`{"status":"REJECTED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assertStatusCode(t, w, http.StatusOK)
	response := decodeJSON(t, w)
	if response["status"] != "REJECTED" {
		t.Errorf("expected status REJECTED, got %v", response["status"])
	}
}
