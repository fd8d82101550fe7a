// Package handler содержит HTTP-обработчики API сервиса ордердеск.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/orderdesk-system/internal/middleware"
	"github.com/mmeshcher/orderdesk-system/internal/model"
	"github.com/mmeshcher/orderdesk-system/internal/service"
	"github.com/mmeshcher/orderdesk-system/internal/store"
	"github.com/mmeshcher/orderdesk-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Login(userID int64) (*model.User, error)
	Logout()
	User(id int64) (*model.User, error)
	SubmitOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Adjudicate(ctx context.Context, orderID string, status model.OrderStatus, reason string) (string, error)
	Users() []model.User
	Orders() []model.Order
	Notifications() []model.Notification
	ClearNotifications()
}

// Handler реализует HTTP-обработчики API сервиса ордердеск.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type loginRequest struct {
	UserID int64 `json:"user_id"`
}

type userResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Points int64  `json:"points"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Points: u.Points,
	}
}

// Login открывает сессию выбранного пользователя и устанавливает cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.UserID == 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	u, err := h.service.Login(req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("login error", zap.Error(err), zap.Int64("userID", req.UserID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, u.ID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toUserResponse(*u)); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// Logout закрывает текущую сессию и сбрасывает cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

type submitOrderRequest struct {
	ProductName    string `json:"product_name"`
	CustomerName   string `json:"customer_name"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Details        string `json:"details"`
	ImageURL       string `json:"image_url,omitempty"`
}

type orderResponse struct {
	ID             string `json:"id"`
	UserID         int64  `json:"user_id"`
	ProductName    string `json:"product_name"`
	CustomerName   string `json:"customer_name"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Details        string `json:"details"`
	ImageURL       string `json:"image_url,omitempty"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	SubmittedAt    string `json:"submitted_at"`
}

func toOrderResponse(o model.Order) orderResponse {
	return orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		ProductName:    o.ProductName,
		CustomerName:   o.CustomerName,
		WhatsAppNumber: o.WhatsAppNumber,
		Details:        o.Details,
		ImageURL:       o.ImageURL,
		Status:         string(o.Status),
		Reason:         o.Reason,
		SubmittedAt:    o.SubmittedAt.Format(time.RFC3339),
	}
}

// SubmitOrder принимает новую заявку от текущего пользователя.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !validation.IsValidWhatsAppNumber(req.WhatsAppNumber) {
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	order, err := h.service.SubmitOrder(r.Context(), model.OrderDraft{
		UserID:         userID,
		ProductName:    req.ProductName,
		CustomerName:   req.CustomerName,
		WhatsAppNumber: req.WhatsAppNumber,
		Details:        req.Details,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftIncomplete):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, store.ErrUserNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("submit order error", zap.Error(err), zap.Int64("userID", userID))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toOrderResponse(*order)); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type decisionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type decisionResponse struct {
	Message string `json:"message,omitempty"`
}

// DecideOrder переводит заказ в окончательный статус. Доступно только
// администраторам.
func (h *Handler) DecideOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	u, err := h.service.User(userID)
	if err != nil || u.Role != model.RoleAdmin {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	orderID := chi.URLParam(r, "id")

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	msg, err := h.service.Adjudicate(r.Context(), orderID, model.OrderStatus(req.Status), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatusNotTerminal), errors.Is(err, service.ErrReasonRequired):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, store.ErrOrderNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, store.ErrOrderSettled):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		default:
			h.logger.Error("decide order error", zap.Error(err), zap.String("order", orderID))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(decisionResponse{Message: msg}); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// GetOrders возвращает список всех заказов, от новых к старым.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.Orders()

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// GetUsers возвращает список пользователей.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users := h.service.Users()

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type notificationResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

// GetNotifications возвращает журнал уведомлений, от новых к старым.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	notifs := h.service.Notifications()

	resp := make([]notificationResponse, 0, len(notifs))
	for _, n := range notifs {
		resp = append(resp, notificationResponse{
			ID:      n.ID,
			Message: n.Message,
			Read:    n.Read,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// ClearNotifications очищает журнал уведомлений.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.service.ClearNotifications()
	w.WriteHeader(http.StatusNoContent)
}
