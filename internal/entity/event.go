package entity

type ScheduleEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DateStart string    `json:"date_start"`
	Deadline  string    `json:"deadline,omitempty"`
	Organizer string    `json:"organizer"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	Type      EventType `json:"type"`
}

type EventType string

const (
	EventTypeContest EventType = "contest"
	EventTypeCourse  EventType = "course"
)
