package pricing

import (
	"math"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Service движок ценообразования
// Чистая функция над тарифной сеткой: без состояния и без I/O,
// поэтому безопасен для конкурентного использования
type Service struct {
	config domain.PriceConfig
}

// NewService создает движок ценообразования с тарифной сеткой из конфигурации
func NewService(config domain.PriceConfig) *Service {
	return &Service{config: config}
}

// CalculatePrice вычисляет цену бронирования
//
// Алгоритм:
//  1. Неизвестный тариф — цена 0 (явный fallback, не ошибка: валидация
//     принадлежности типа каталогу — забота вызывающего кода)
//  2. Если для целого числа часов есть bundle — берем его фиксированную цену,
//     иначе base = hourly_rate * durationHours. Bundle подбирается только
//     точным совпадением: запрос на 4 часа при наличии bundle'ов 3ч/5ч
//     считается по почасовой ставке, без комбинирования
//  3. Надбавки: PS5 с геймпадами сверх включенных — base * 1.5;
//     VIP с гостями сверх включенных — base + 20
//  4. Округление вверх до целой единицы валюты
//
// Нулевая и отрицательная длительность дают 0 (не ошибку) — так ведет себя
// расчет при вырожденных входах вроде elapsed-минут досрочной остановки
func (s *Service) CalculatePrice(stationType domain.StationType, durationHours float64, opts domain.PriceOptions) float64 {
	if durationHours <= 0 {
		return 0
	}

	typePricing, ok := s.config[stationType]
	if !ok {
		return 0
	}

	base := typePricing.HourlyRate * durationHours

	if wholeHours, isWhole := wholeHourDuration(durationHours); isWhole {
		if bundlePrice, hasBundle := typePricing.Bundles[wholeHours]; hasBundle {
			base = bundlePrice
		}
	}

	if stationType == domain.TypePS5 && opts.Controllers > domain.PS5ControllersIncluded {
		base *= domain.PS5ControllersFactor
	}

	if stationType == domain.TypeVIP && opts.Guests > domain.VIPGuestsIncluded {
		base += domain.VIPGuestsSurcharge
	}

	if base < 0 {
		return 0
	}

	return math.Ceil(base)
}

// SplitCustomAmount делит произвольную сумму поровну между участниками группы
// с округлением до копеек
//
// Остаток копеек при неточном делении не перераспределяется — суммарная цена
// участников может отличаться от введенной суммы на доли копейки с участника.
// Известное ограничение, зафиксировано осознанно
func (s *Service) SplitCustomAmount(amount float64, members int) float64 {
	if members <= 0 {
		return 0
	}
	if amount < 0 {
		return 0
	}
	return math.Round(amount/float64(members)*100) / 100
}

// wholeHourDuration возвращает длительность в целых часах, если она целая
func wholeHourDuration(durationHours float64) (int, bool) {
	whole := math.Trunc(durationHours)
	if whole != durationHours {
		return 0, false
	}
	return int(whole), true
}
