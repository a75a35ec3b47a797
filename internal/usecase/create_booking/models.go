package create_booking

import (
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID  int64              // ID клиента (из заголовка аутентификации)
	VehicleID   int64              // ID автомобиля клиента
	ServiceIDs  []int64            // Выбранные услуги, определяют длительность окна
	BookingType domain.BookingType // stationary | mobile
	ScheduledAt time.Time          // Начало окна

	// Координаты клиента, обязательны для mobile
	CustomerLocation *domain.GeoPoint

	// Явное предпочтение ресурса (опционально)
	WashBayID    *int64
	MobileTeamID *int64

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием и назначенным ресурсом
type Response struct {
	ID          int64     // ID созданного бронирования
	CustomerID  int64     // ID клиента
	VehicleID   int64     // ID автомобиля
	ServiceIDs  []int64   // Выбранные услуги
	BookingType string    // Тип бронирования
	ScheduledAt time.Time // Начало окна
	WindowEnd   time.Time // Конец окна (не включительно)

	DurationMinutes int    // Суммарная длительность услуг
	Status          string // Начальный статус (pending или confirmed)

	// Назначенный ресурс
	WashBayID    *int64
	MobileTeamID *int64

	// Денормализованные данные
	ServiceNames        []string // Названия услуг
	TotalPrice          float64  // Суммарная цена
	VehicleBrand        *string  // Марка автомобиля
	VehicleModel        *string  // Модель автомобиля
	VehicleLicensePlate *string  // Госномер
	Notes               *string  // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
