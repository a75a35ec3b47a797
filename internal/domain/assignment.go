package domain

// Assignment неизменяемое значение "ресурс занят окном владеющего бронирования"
// Создается ровно один раз вместе с бронированием и уничтожается при его отмене.
// Инвариант: для любого ресурса окна назначений активных бронирований попарно
// не пересекаются
type Assignment struct {
	BookingID    int64
	ResourceType ResourceType
	ResourceID   int64
	Window       TimeWindow
}

// ConflictsWith reports whether two assignments claim the same resource
// for overlapping windows
func (a Assignment) ConflictsWith(other Assignment) bool {
	if a.ResourceType != other.ResourceType || a.ResourceID != other.ResourceID {
		return false
	}
	return a.Window.Overlaps(other.Window)
}
