// Package model содержит доменные сущности сервиса ордердеск.
package model

import "time"

// UserRole описывает роль пользователя в системе.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User представляет пользователя системы согласования заказов.
type User struct {
	ID     int64
	Name   string
	Email  string
	Role   UserRole
	Points int64
}

// OrderStatus описывает статус рассмотрения заказа.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusApproved          OrderStatus = "APPROVED"
	OrderStatusPartiallyApproved OrderStatus = "PARTIALLY_APPROVED"
	OrderStatusRejected          OrderStatus = "REJECTED"
)

// IsTerminal сообщает, является ли статус окончательным.
// Заказ в окончательном статусе повторному рассмотрению не подлежит.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusApproved, OrderStatusPartiallyApproved, OrderStatusRejected:
		return true
	}
	return false
}

// Label возвращает человекочитаемое название статуса для уведомлений.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusApproved:
		return "Approved"
	case OrderStatusPartiallyApproved:
		return "Partially Approved"
	case OrderStatusRejected:
		return "Rejected"
	}
	return string(s)
}

// Order описывает заказ пользователя и результат его рассмотрения.
// Reason заполняется только при отклонении или частичном согласовании.
type Order struct {
	ID             string
	UserID         int64
	ProductName    string
	CustomerName   string
	WhatsAppNumber string
	Details        string
	ImageURL       string
	Status         OrderStatus
	Reason         string
	SubmittedAt    time.Time
}

// OrderDraft содержит поля нового заказа до присвоения идентификатора,
// статуса и времени подачи.
type OrderDraft struct {
	UserID         int64
	ProductName    string
	CustomerName   string
	WhatsAppNumber string
	Details        string
	ImageURL       string
}

// Notification описывает запись журнала уведомлений.
type Notification struct {
	ID      int64
	Message string
	Read    bool
}
