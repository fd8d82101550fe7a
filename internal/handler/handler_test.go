package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/orderdesk-system/internal/middleware"
	"github.com/mmeshcher/orderdesk-system/internal/model"
	"github.com/mmeshcher/orderdesk-system/internal/store"
)

type stubService struct {
	loginUser *model.User
	loginErr  error

	user    *model.User
	userErr error

	submitOrder *model.Order
	submitErr   error

	decideMsg string
	decideErr error

	users  []model.User
	orders []model.Order
	notifs []model.Notification

	logoutCalled bool
	clearCalled  bool
}

func (s *stubService) Login(userID int64) (*model.User, error) {
	return s.loginUser, s.loginErr
}

func (s *stubService) Logout() {
	s.logoutCalled = true
}

func (s *stubService) User(id int64) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) SubmitOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	return s.submitOrder, s.submitErr
}

func (s *stubService) Adjudicate(ctx context.Context, orderID string, status model.OrderStatus, reason string) (string, error) {
	return s.decideMsg, s.decideErr
}

func (s *stubService) Users() []model.User {
	return s.users
}

func (s *stubService) Orders() []model.Order {
	return s.orders
}

func (s *stubService) Notifications() []model.Notification {
	return s.notifs
}

func (s *stubService) ClearNotifications() {
	s.clearCalled = true
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, logger, auth)
}

func authCookie(t *testing.T, h *Handler, userID int64) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	h.authMiddleware.SetAuthCookie(rec, userID)

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no auth cookie set")
	}
	return cookies[0]
}

func TestLogin_Success(t *testing.T) {
	svc := &stubService{
		loginUser: &model.User{ID: 1, Name: "Alice Johnson", Role: model.RoleUser, Points: 150},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{UserID: 1})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if len(res.Cookies()) == 0 {
		t.Fatalf("login must set a session cookie")
	}

	var u userResponse
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if u.Name != "Alice Johnson" || u.Points != 150 {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := &stubService{
		loginErr: store.ErrUserNotFound,
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{UserID: 999})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNotFound)
	}
}

func TestSubmitOrder_Unauthorized(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	router := h.SetupRouter()

	body, _ := json.Marshal(submitOrderRequest{
		ProductName:    "Custom Mug",
		CustomerName:   "Dana",
		WhatsAppNumber: "15550000001",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestSubmitOrder_InvalidWhatsAppNumber(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	router := h.SetupRouter()

	body, _ := json.Marshal(submitOrderRequest{
		ProductName:    "Custom Mug",
		CustomerName:   "Dana",
		WhatsAppNumber: "not-a-number",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestSubmitOrder_Created(t *testing.T) {
	svc := &stubService{
		submitOrder: &model.Order{
			ID:          "ORD004",
			UserID:      1,
			ProductName: "Custom Mug",
			Status:      model.OrderStatusPending,
			SubmittedAt: time.Now(),
		},
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	body, _ := json.Marshal(submitOrderRequest{
		ProductName:    "Custom Mug",
		CustomerName:   "Dana",
		WhatsAppNumber: "15550000001",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var o orderResponse
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if o.ID != "ORD004" || o.Status != string(model.OrderStatusPending) {
		t.Fatalf("unexpected order: %+v", o)
	}
}

func TestDecideOrder_ForbiddenForNonAdmin(t *testing.T) {
	svc := &stubService{
		user: &model.User{ID: 1, Role: model.RoleUser},
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	body, _ := json.Marshal(decisionRequest{Status: string(model.OrderStatusApproved)})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD003/decision", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusForbidden)
	}
}

func TestDecideOrder_ConflictWhenSettled(t *testing.T) {
	svc := &stubService{
		user:      &model.User{ID: 100, Role: model.RoleAdmin},
		decideErr: store.ErrOrderSettled,
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	body, _ := json.Marshal(decisionRequest{Status: string(model.OrderStatusRejected), Reason: "late"})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD001/decision", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 100))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusConflict)
	}
}

func TestDecideOrder_ReturnsMessage(t *testing.T) {
	svc := &stubService{
		user:      &model.User{ID: 100, Role: model.RoleAdmin},
		decideMsg: "Dear Dana, your order is approved.",
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	body, _ := json.Marshal(decisionRequest{Status: string(model.OrderStatusApproved)})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD003/decision", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 100))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp decisionResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Dear Dana, your order is approved." {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestGetOrders_NoContent(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	router := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNoContent)
	}
}

func TestGetNotifications_JSONResponse(t *testing.T) {
	svc := &stubService{
		notifs: []model.Notification{
			{ID: 2, Message: "Order ORD003 has been Approved."},
			{ID: 1, Message: "Your new order has been submitted successfully!"},
		},
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}

	var resp []notificationResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != 2 {
		t.Fatalf("unexpected notifications: %+v", resp)
	}
}

func TestClearNotifications(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/notifications", nil)
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNoContent)
	}
	if !svc.clearCalled {
		t.Fatalf("ClearNotifications was not called")
	}
}

func TestLogout(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	req.AddCookie(authCookie(t, h, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusOK)
	}
	if !svc.logoutCalled {
		t.Fatalf("Logout was not called")
	}
}
