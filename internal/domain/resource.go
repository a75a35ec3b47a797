package domain

import "time"

// ResourceType тип физического ресурса, обслуживающего бронирование
type ResourceType string

const (
	ResourceTypeWashBay    ResourceType = "wash_bay"
	ResourceTypeMobileTeam ResourceType = "mobile_team"
)

// ResourceStatus статус ресурса
// Неактивные ресурсы не участвуют в подборе
type ResourceStatus string

const (
	ResourceStatusActive   ResourceStatus = "active"
	ResourceStatusInactive ResourceStatus = "inactive"
)

// VehicleSizeClass ordered vehicle size class: compact < standard < large < oversized
type VehicleSizeClass string

const (
	SizeCompact   VehicleSizeClass = "compact"
	SizeStandard  VehicleSizeClass = "standard"
	SizeLarge     VehicleSizeClass = "large"
	SizeOversized VehicleSizeClass = "oversized"
)

// sizeRank порядок классов для сравнения вместимости
var sizeRank = map[VehicleSizeClass]int{
	SizeCompact:   0,
	SizeStandard:  1,
	SizeLarge:     2,
	SizeOversized: 3,
}

// IsValid returns true if the size class is one of the known values
func (s VehicleSizeClass) IsValid() bool {
	_, ok := sizeRank[s]
	return ok
}

// Covers reports whether a resource with this size ceiling can serve
// a vehicle of the given class
func (s VehicleSizeClass) Covers(vehicle VehicleSizeClass) bool {
	return sizeRank[s] >= sizeRank[vehicle]
}

// WashBay стационарный моечный бокс
type WashBay struct {
	ID             int64
	BayNumber      int // ключ сортировки при подборе, детерминирует выбор
	MaxVehicleSize VehicleSizeClass
	EquipmentTypes []string
	Status         ResourceStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive returns true if the bay accepts new bookings
func (w *WashBay) IsActive() bool {
	return w.Status == ResourceStatusActive
}

// CanServe проверяет совместимость бокса с автомобилем и набором требуемого оборудования
func (w *WashBay) CanServe(size VehicleSizeClass, requiredEquipment []string) bool {
	if !w.IsActive() {
		return false
	}
	if !w.MaxVehicleSize.Covers(size) {
		return false
	}
	return hasAllEquipment(w.EquipmentTypes, requiredEquipment)
}

// MobileTeam выездная бригада мойки
type MobileTeam struct {
	ID              int64
	Name            string
	BaseLocation    GeoPoint
	ServiceRadiusKm float64
	DailyCapacity   int // максимум заказов бригады за календарный день
	EquipmentTypes  []string
	Status          ResourceStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive returns true if the team accepts new bookings
func (t *MobileTeam) IsActive() bool {
	return t.Status == ResourceStatusActive
}

// CoversLocation проверяет, что адрес клиента попадает в радиус обслуживания бригады
func (t *MobileTeam) CoversLocation(location GeoPoint) bool {
	return t.BaseLocation.DistanceKm(location) <= t.ServiceRadiusKm
}

// CanServe проверяет совместимость бригады с адресом клиента и требуемым оборудованием
func (t *MobileTeam) CanServe(location GeoPoint, requiredEquipment []string) bool {
	if !t.IsActive() {
		return false
	}
	if !t.CoversLocation(location) {
		return false
	}
	return hasAllEquipment(t.EquipmentTypes, requiredEquipment)
}

// hasAllEquipment проверяет, что available содержит все элементы required
func hasAllEquipment(available, required []string) bool {
	for _, req := range required {
		found := false
		for _, have := range available {
			if have == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
