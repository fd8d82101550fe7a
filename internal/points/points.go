// Package points содержит таблицу начисления баллов лояльности.
package points

import "github.com/mmeshcher/orderdesk-system/internal/model"

const (
	awardApproved          = 20
	awardPartiallyApproved = 10
)

// For возвращает количество баллов, начисляемых за перевод заказа
// в указанный статус. Для всех прочих статусов начисление равно нулю.
func For(status model.OrderStatus) int64 {
	switch status {
	case model.OrderStatusApproved:
		return awardApproved
	case model.OrderStatusPartiallyApproved:
		return awardPartiallyApproved
	}
	return 0
}
