package domain

import (
	"errors"
	"time"
)

// ErrNonPositiveDuration возвращается при попытке вычислить окно с нулевой
// или отрицательной суммарной длительностью услуг
var ErrNonPositiveDuration = errors.New("domain: total duration must be positive")

// TimeWindow полуоткрытый временной интервал [Start, End)
// Окно занимает ресурс с Start включительно до End не включительно
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow создает окно от start длительностью durationMinutes
func NewTimeWindow(start time.Time, durationMinutes int) TimeWindow {
	return TimeWindow{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether two windows overlap in time
// Полуоткрытые интервалы: окно, начинающееся ровно в момент окончания другого,
// пересечением НЕ считается - бронирования "впритык" разрешены
//
// Примеры:
// - [10:00, 10:30) и [10:15, 10:45) -> пересекаются
// - [10:00, 10:30) и [10:30, 11:00) -> НЕ пересекаются (граничат)
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// DurationMinutes возвращает длительность окна в минутах
func (w TimeWindow) DurationMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// SameDay reports whether the window starts on the given calendar day
func (w TimeWindow) SameDay(day time.Time) bool {
	y1, m1, d1 := w.Start.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ComputeWindow вычисляет окно бронирования: суммирует длительности выбранных
// услуг и строит интервал [scheduledAt, scheduledAt+total)
// Чистая функция без побочных эффектов
func ComputeWindow(scheduledAt time.Time, serviceDurations []int) (TimeWindow, error) {
	total := 0
	for _, d := range serviceDurations {
		total += d
	}

	if total <= 0 {
		return TimeWindow{}, ErrNonPositiveDuration
	}

	return NewTimeWindow(scheduledAt, total), nil
}
