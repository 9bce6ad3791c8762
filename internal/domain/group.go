package domain

import (
	"fmt"
	"time"
)

// GroupKey возвращает производный ключ групповой заявки
//
// Два бронирования принадлежат одной группе, если их тройка
// (телефон клиента, начало, конец) побайтово совпадает. Это
// единственное место, где ключ вычисляется — все проверки
// принадлежности к группе обязаны использовать эту функцию.
//
// Используется как fallback для строк без group_id (одиночные
// бронирования и данные, импортированные до введения group_id)
func GroupKey(customerPhone string, start, end time.Time) string {
	return fmt.Sprintf("%s|%d|%d", customerPhone, start.Unix(), end.Unix())
}

// SameGroupTuple проверяет, что два бронирования совпадают по производному ключу группы
func SameGroupTuple(a, b *Reservation) bool {
	return GroupKey(a.CustomerPhone, a.StartAt, a.EndAt) == GroupKey(b.CustomerPhone, b.StartAt, b.EndAt)
}
