package schedule

import (
	"sort"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

const (
	dayLayout     = "2006-01-02"
	upcomingLimit = 50
	pastLimit     = 5
)

// daySlice возвращает календарный день UTC для значения даты из API.
// Понимает полную метку времени RFC3339 и голый день YYYY-MM-DD.
func daySlice(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	if t, err := time.Parse(dayLayout, value); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// eventRange возвращает границы события в календарных днях. Дедлайн
// по умолчанию совпадает с днем начала. Событие с началом или дедлайном,
// которые не удалось разобрать, исключается из всех выборок по дню.
func eventRange(e entity.ScheduleEvent) (start, end time.Time, ok bool) {
	start, ok = daySlice(e.DateStart)
	if !ok {
		return start, end, false
	}

	end = start
	if e.Deadline != "" {
		end, ok = daySlice(e.Deadline)
		if !ok {
			return start, end, false
		}
	}

	return start, end, true
}

// EventsOnDay возвращает события, чей интервал [начало, дедлайн] включает
// календарный день day (формат YYYY-MM-DD). Функция чистая: не обращается
// ни к сети, ни к часам.
func EventsOnDay(day string, events []entity.ScheduleEvent) []entity.ScheduleEvent {
	target, ok := daySlice(day)
	if !ok {
		return nil
	}

	var matched []entity.ScheduleEvent
	for _, e := range events {
		start, end, ok := eventRange(e)
		if !ok {
			continue
		}

		if !target.Before(start) && !target.After(end) {
			matched = append(matched, e)
		}
	}

	return matched
}

// effectiveEnd возвращает момент окончания события для сортировки списков:
// дедлайн, при его отсутствии день начала. Неразборчивые значения считаются
// нулевой меткой времени и не приводят к ошибке.
func effectiveEnd(e entity.ScheduleEvent) time.Time {
	if e.Deadline != "" {
		if t, ok := daySlice(e.Deadline); ok {
			return t
		}

		return time.Unix(0, 0).UTC()
	}

	if t, ok := daySlice(e.DateStart); ok {
		return t
	}

	return time.Unix(0, 0).UTC()
}

func startForSort(e entity.ScheduleEvent) time.Time {
	if t, ok := daySlice(e.DateStart); ok {
		return t
	}

	return time.Unix(0, 0).UTC()
}

// Upcoming возвращает события, которые еще не закончились к моменту now,
// по возрастанию дня начала, не более 50.
func Upcoming(events []entity.ScheduleEvent, now time.Time) []entity.ScheduleEvent {
	var matched []entity.ScheduleEvent
	for _, e := range events {
		if !effectiveEnd(e).Before(now) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return startForSort(matched[i]).Before(startForSort(matched[j]))
	})

	if len(matched) > upcomingLimit {
		matched = matched[:upcomingLimit]
	}

	return matched
}

// Past возвращает события, закончившиеся к моменту now, по убыванию дня
// начала, не более 5.
func Past(events []entity.ScheduleEvent, now time.Time) []entity.ScheduleEvent {
	var matched []entity.ScheduleEvent
	for _, e := range events {
		if effectiveEnd(e).Before(now) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return startForSort(matched[j]).Before(startForSort(matched[i]))
	})

	if len(matched) > pastLimit {
		matched = matched[:pastLimit]
	}

	return matched
}
