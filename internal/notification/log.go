// Package notification реализует журнал уведомлений о событиях системы.
package notification

import (
	"sync"

	"github.com/mmeshcher/orderdesk-system/internal/model"
)

// Log хранит уведомления в порядке от новых к старым.
type Log struct {
	mu      sync.Mutex
	nextID  int64
	entries []model.Notification
}

// NewLog создаёт пустой журнал уведомлений.
func NewLog() *Log {
	return &Log{nextID: 1}
}

// Add добавляет непрочитанное уведомление в начало журнала.
func (l *Log) Add(message string) model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := model.Notification{
		ID:      l.nextID,
		Message: message,
	}
	l.nextID++

	l.entries = append([]model.Notification{n}, l.entries...)
	return n
}

// List возвращает копию журнала, от самых свежих уведомлений к старым.
func (l *Log) List() []model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]model.Notification, len(l.entries))
	copy(res, l.entries)
	return res
}

// Clear удаляет все уведомления из журнала.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}
