package store

import (
	"time"

	"github.com/mmeshcher/orderdesk-system/internal/model"
)

// DemoUsers возвращает стартовый набор пользователей демо-стенда.
func DemoUsers() []model.User {
	return []model.User{
		{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Role: model.RoleUser, Points: 150},
		{ID: 2, Name: "Bob Williams", Email: "bob@example.com", Role: model.RoleUser, Points: 75},
		{ID: 100, Name: "Admin Manager", Email: "admin@example.com", Role: model.RoleAdmin},
	}
}

// DemoOrders возвращает стартовый набор заказов демо-стенда.
func DemoOrders() []model.Order {
	return []model.Order{
		{
			ID:             "ORD001",
			UserID:         1,
			ProductName:    "Custom T-Shirt",
			CustomerName:   "Charlie Brown",
			WhatsAppNumber: "15551234567",
			Details:        "Size L, blue color, with a custom logo.",
			ImageURL:       "https://picsum.photos/seed/ORD001/400/300",
			Status:         model.OrderStatusApproved,
			SubmittedAt:    time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:             "ORD002",
			UserID:         2,
			ProductName:    "Engraved Mug",
			CustomerName:   "Diana Prince",
			WhatsAppNumber: "15557654321",
			Details:        `11oz ceramic mug with "Wonder" text.`,
			ImageURL:       "https://picsum.photos/seed/ORD002/400/300",
			Status:         model.OrderStatusRejected,
			Reason:         "Image resolution too low for engraving.",
			SubmittedAt:    time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:             "ORD003",
			UserID:         1,
			ProductName:    "Business Cards (x500)",
			CustomerName:   "Eve Adams",
			WhatsAppNumber: "15558889999",
			Details:        "Matte finish, double-sided print.",
			ImageURL:       "https://picsum.photos/seed/ORD003/400/300",
			Status:         model.OrderStatusPending,
			SubmittedAt:    time.Date(2023, 10, 27, 9, 15, 0, 0, time.UTC),
		},
	}
}
