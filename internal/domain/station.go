package domain

// StationType тариф станции
type StationType string

const (
	TypeStandard StationType = "STANDARD"
	TypePro      StationType = "PRO"
	TypePremium  StationType = "PREMIUM"
	TypePremiumX StationType = "PREMIUM_X"
	TypeVIP      StationType = "VIP"
	TypePS5      StationType = "PS5"
)

// KnownStationTypes список всех известных тарифов
var KnownStationTypes = []StationType{
	TypeStandard,
	TypePro,
	TypePremium,
	TypePremiumX,
	TypeVIP,
	TypePS5,
}

// IsKnown возвращает true, если тариф входит в каталог
func (t StationType) IsKnown() bool {
	for _, known := range KnownStationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Station игровая станция — бронируемая единица
// Каталог станций неизменяем со стороны движка бронирований,
// провижининг станций выполняет отдельный сервис
type Station struct {
	ID     string      // Уникальный ID, неймспейс по филиалу (например, "tbilisi-pro-1")
	Type   StationType // Тариф станции
	Branch string      // Филиал
	Name   string      // Отображаемое название
}
