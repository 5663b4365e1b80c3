package events

import "time"

const PunchRecordedTopic = "karma.attendance.punch.v1"

const PunchRecordedEventType = "punch_recorded"

type PunchRecordedEvent struct {
	EventType  string     `json:"event_type"`
	RequestID  string     `json:"request_id,omitempty"`
	CompanyID  string     `json:"company_id"`
	Kind       string     `json:"kind"`
	PersonID   string     `json:"person_id"`
	PersonName string     `json:"person_name,omitempty"`
	Direction  string     `json:"direction"`
	Date       string     `json:"date"`
	InTime     *time.Time `json:"in_time"`
	OutTime    *time.Time `json:"out_time"`
	OccurredAt time.Time  `json:"occurred_at"`
}
