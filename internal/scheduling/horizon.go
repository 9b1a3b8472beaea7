package scheduling

import "time"

// Today календарная дата "сейчас" в часовом поясе салона (полночь UTC)
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPastDate возвращает true, если дата раньше сегодняшней по времени салона
func IsPastDate(date, now time.Time, loc *time.Location) bool {
	return dateOnly(date).Before(Today(now, loc))
}

// WithinHorizon проверяет, что дата не дальше months месяцев от сегодня
// months <= 0 означает отсутствие ограничения
func WithinHorizon(date, now time.Time, months int, loc *time.Location) bool {
	if months <= 0 {
		return true
	}
	limit := Today(now, loc).AddDate(0, months, 0)
	return !dateOnly(date).After(limit)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
