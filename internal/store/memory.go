// Package store содержит хранилище пользователей и заказов в памяти процесса.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mmeshcher/orderdesk-system/internal/model"
)

// ErrOrderNotFound возвращается, если заказ с указанным идентификатором не найден.
var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderSettled возвращается при попытке изменить заказ в окончательном статусе.
	ErrOrderSettled = errors.New("order already settled")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

// MemoryStore хранит канонические коллекции пользователей и заказов.
// Мутирующие операции имитируют обращение к внешнему бэкенду: они
// завершаются не раньше, чем истечёт заданная задержка.
type MemoryStore struct {
	latency time.Duration

	mu        sync.Mutex
	nextOrder int64
	users     []model.User
	orders    []model.Order
}

// New создаёт пустое хранилище с указанной имитируемой задержкой
// мутирующих операций.
func New(latency time.Duration) *MemoryStore {
	return &MemoryStore{
		latency:   latency,
		nextOrder: 1,
	}
}

// SeedUsers загружает стартовый набор пользователей. Вызывается один раз
// при инициализации системы.
func (s *MemoryStore) SeedUsers(users ...model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, users...)
}

// SeedOrders загружает стартовый набор заказов и сдвигает счётчик
// идентификаторов, чтобы новые заказы продолжали нумерацию.
func (s *MemoryStore) SeedOrders(orders ...model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, orders...)
	s.nextOrder += int64(len(orders))
}

// ListUsers возвращает снимок списка пользователей.
func (s *MemoryStore) ListUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.User, len(s.users))
	copy(res, s.users)
	return res
}

// GetUser возвращает пользователя по идентификатору.
func (s *MemoryStore) GetUser(id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			res := u
			return &res, nil
		}
	}
	return nil, ErrUserNotFound
}

// ListOrders возвращает снимок списка заказов, отсортированный по времени
// подачи от новых к старым.
func (s *MemoryStore) ListOrders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.Order, len(s.orders))
	copy(res, s.orders)

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].SubmittedAt.After(res[j].SubmittedAt)
	})
	return res
}

// CreateOrder создаёт новый заказ в статусе PENDING, присваивает ему
// следующий последовательный идентификатор и время подачи. Операция
// завершается после имитируемой задержки бэкенда.
func (s *MemoryStore) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := model.Order{
		ID:             fmt.Sprintf("ORD%03d", s.nextOrder),
		UserID:         draft.UserID,
		ProductName:    draft.ProductName,
		CustomerName:   draft.CustomerName,
		WhatsAppNumber: draft.WhatsAppNumber,
		Details:        draft.Details,
		ImageURL:       draft.ImageURL,
		Status:         model.OrderStatusPending,
		SubmittedAt:    time.Now(),
	}
	s.nextOrder++

	s.orders = append([]model.Order{order}, s.orders...)

	res := order
	return &res, nil
}

// UpdateOrderStatus переводит заказ в указанный статус. Проверка текущего
// статуса и замена записи выполняются в одной критической секции, поэтому
// из двух конкурентных вызовов по одному заказу выигрывает ровно один:
// второй получает ErrOrderSettled. Запись заменяется целиком, ранее
// выданные снимки не меняются.
func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, reason string) (*model.Order, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID != orderID {
			continue
		}
		if o.Status.IsTerminal() {
			return nil, ErrOrderSettled
		}

		updated := o
		updated.Status = status
		if reason != "" {
			updated.Reason = reason
		}
		s.orders[i] = updated

		res := updated
		return &res, nil
	}

	return nil, ErrOrderNotFound
}

// AwardPoints увеличивает баланс пользователя на указанное число баллов.
// Начисление — часть уже подтверждённого перехода статуса, поэтому
// выполняется синхронно, без имитации задержки.
func (s *MemoryStore) AwardPoints(userID int64, delta int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != userID {
			continue
		}

		updated := u
		updated.Points += delta
		s.users[i] = updated

		res := updated
		return &res, nil
	}

	return nil, ErrUserNotFound
}

func (s *MemoryStore) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
