package domain

// Default policy values
const (
	DefaultCancelMinNoticeMinutes = 30 // Минимальное время до начала, когда отмена ещё разрешена
	DefaultMinChargeMinutes       = 1  // Минимальная тарифицируемая длительность при досрочной остановке
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxCustomerNameLength = 200
	PhoneSuffixLength     = 9 // Сколько последних цифр телефона сравниваем при проверке владельца
)

// Surcharge rules
const (
	PS5ControllersIncluded = 2    // Геймпады сверх этого количества дают надбавку
	PS5ControllersFactor   = 1.5  // Множитель цены за дополнительные геймпады
	VIPGuestsIncluded      = 6    // Гости сверх этого количества дают надбавку
	VIPGuestsSurcharge     = 20.0 // Фиксированная надбавка за дополнительных гостей
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
