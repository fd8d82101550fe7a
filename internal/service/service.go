// Package service реализует бизнес-логику согласования заказов.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mmeshcher/orderdesk-system/internal/messenger"
	"github.com/mmeshcher/orderdesk-system/internal/model"
	"github.com/mmeshcher/orderdesk-system/internal/notification"
	"github.com/mmeshcher/orderdesk-system/internal/points"
)

// ErrDraftIncomplete возвращается, если в заявке не заполнены обязательные поля.
var (
	ErrDraftIncomplete = errors.New("product name, customer name and whatsapp number are required")
	// ErrReasonRequired возвращается при отклонении или частичном согласовании без причины.
	ErrReasonRequired = errors.New("reason is required for this decision")
	// ErrStatusNotTerminal возвращается, если запрошенный статус не является окончательным.
	ErrStatusNotTerminal = errors.New("decision status must be terminal")
)

// Store описывает контракт доступа к данным, используемый сервисом.
type Store interface {
	ListUsers() []model.User
	GetUser(id int64) (*model.User, error)
	ListOrders() []model.Order
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, reason string) (*model.Order, error)
	AwardPoints(userID int64, delta int64) (*model.User, error)
}

// MessageGenerator описывает внешний сервис генерации сообщений для клиентов.
type MessageGenerator interface {
	GenerateApprovalMessage(ctx context.Context, order model.Order) (string, error)
}

// Service содержит бизнес-логику согласования заказов: проверяет
// допустимость операций, обращается к хранилищу и после подтверждения
// применяет побочные эффекты — начисление баллов и запись уведомления.
type Service struct {
	store         Store
	messenger     MessageGenerator
	notifications *notification.Log

	sessionMu   sync.Mutex
	currentUser *model.User
}

// NewService создаёт сервис поверх указанного хранилища и клиента
// сервиса сообщений. Журнал уведомлений принадлежит сервису.
func NewService(store Store, gen MessageGenerator) *Service {
	return &Service{
		store:         store,
		messenger:     gen,
		notifications: notification.NewLog(),
	}
}

// Login открывает сессию пользователя и записывает приветствие в журнал.
func (s *Service) Login(userID int64) (*model.User, error) {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	s.sessionMu.Lock()
	s.currentUser = u
	s.sessionMu.Unlock()

	s.notifications.Add(fmt.Sprintf("Welcome back, %s!", u.Name))
	return u, nil
}

// Logout закрывает текущую сессию и записывает прощание в журнал.
func (s *Service) Logout() {
	s.sessionMu.Lock()
	u := s.currentUser
	s.currentUser = nil
	s.sessionMu.Unlock()

	if u != nil {
		s.notifications.Add(fmt.Sprintf("Goodbye, %s.", u.Name))
	}
}

// CurrentUser возвращает пользователя текущей сессии либо nil.
func (s *Service) CurrentUser() *model.User {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// User возвращает пользователя по идентификатору.
func (s *Service) User(id int64) (*model.User, error) {
	return s.store.GetUser(id)
}

// SubmitOrder проверяет заявку, создаёт заказ в статусе PENDING и после
// подтверждения хранилищем записывает уведомление о подаче.
func (s *Service) SubmitOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if strings.TrimSpace(draft.ProductName) == "" ||
		strings.TrimSpace(draft.CustomerName) == "" ||
		strings.TrimSpace(draft.WhatsAppNumber) == "" {
		return nil, ErrDraftIncomplete
	}

	if _, err := s.store.GetUser(draft.UserID); err != nil {
		return nil, err
	}

	order, err := s.store.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.notifications.Add("Your new order has been submitted successfully!")
	return order, nil
}

// Adjudicate переводит заказ в окончательный статус. Побочные эффекты —
// уведомление, начисление баллов и генерация сообщения для клиента —
// применяются ровно один раз и только после того, как хранилище
// подтвердило переход. Для статуса APPROVED возвращается текст сообщения
// клиенту; отказ внешнего сервиса не отменяет переход — используется
// детерминированный запасной текст.
func (s *Service) Adjudicate(ctx context.Context, orderID string, status model.OrderStatus, reason string) (string, error) {
	if !status.IsTerminal() {
		return "", ErrStatusNotTerminal
	}
	if status == model.OrderStatusRejected || status == model.OrderStatusPartiallyApproved {
		if strings.TrimSpace(reason) == "" {
			return "", ErrReasonRequired
		}
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, status, reason)
	if err != nil {
		return "", err
	}

	s.notifications.Add(fmt.Sprintf("Order %s has been %s.", order.ID, status.Label()))

	if delta := points.For(status); delta > 0 {
		// Заказ может быть рассмотрен, даже если запись владельца потеряна:
		// переход и уведомление остаются в силе, начисление пропускается.
		_, _ = s.store.AwardPoints(order.UserID, delta)
	}

	if status != model.OrderStatusApproved {
		return "", nil
	}

	if s.messenger != nil {
		if msg, genErr := s.messenger.GenerateApprovalMessage(ctx, *order); genErr == nil {
			return msg, nil
		}
	}
	return messenger.FallbackMessage(*order), nil
}

// Users возвращает снимок списка пользователей.
func (s *Service) Users() []model.User {
	return s.store.ListUsers()
}

// Orders возвращает снимок списка заказов.
func (s *Service) Orders() []model.Order {
	return s.store.ListOrders()
}

// Notifications возвращает снимок журнала уведомлений.
func (s *Service) Notifications() []model.Notification {
	return s.notifications.List()
}

// ClearNotifications очищает журнал уведомлений.
func (s *Service) ClearNotifications() {
	s.notifications.Clear()
}
