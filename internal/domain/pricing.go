package domain

// PriceOptions дополнительные опции бронирования, влияющие на цену
// Не персистятся — их эффект запекается в total_price при расчете
type PriceOptions struct {
	Guests      int // Количество гостей (надбавка для VIP)
	Controllers int // Количество геймпадов (надбавка для PS5)
}

// TypePricing тарификация одного типа станции
type TypePricing struct {
	HourlyRate float64         // Почасовая ставка
	Bundles    map[int]float64 // Фиксированная цена за целое число часов (bundle)
}

// PriceConfig тарифная сетка: тариф станции -> правила ценообразования
// Поставляется конфигурацией (config.toml), а не кодом, чтобы операторы
// могли менять цены без редеплоя
type PriceConfig map[StationType]TypePricing
