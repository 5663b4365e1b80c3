package attendance

import (
	"time"
)

// DateLayout is the calendar-day key of a punch record.
const DateLayout = "2006-01-02"

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Kind partitions a tenant's ledgers by the type of person being punched.
type Kind string

const (
	KindStaff   Kind = "staff"
	KindStudent Kind = "student"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStaff, KindStudent:
		return Kind(s), true
	default:
		return "", false
	}
}

// Identifiable is anything the ledger can punch: it only needs a stable id.
type Identifiable interface {
	PersonID() string
}

// PunchRecord is the single attendance record of a person for a calendar day.
// Only the latest in/out pair of the day is kept.
type PunchRecord struct {
	PersonID string     `json:"personId"`
	Date     string     `json:"date"`
	InTime   *time.Time `json:"inTime"`
	OutTime  *time.Time `json:"outTime"`
}

// IsOpen reports whether the record has an in-punch awaiting its out-punch.
func (r PunchRecord) IsOpen() bool {
	return r.InTime != nil && r.OutTime == nil
}

func (r PunchRecord) clone() PunchRecord {
	out := PunchRecord{PersonID: r.PersonID, Date: r.Date}
	if r.InTime != nil {
		v := *r.InTime
		out.InTime = &v
	}
	if r.OutTime != nil {
		v := *r.OutTime
		out.OutTime = &v
	}
	return out
}

// PunchEvent is delivered to subscribers after a punch has been applied.
type PunchEvent struct {
	CompanyID  string
	Kind       Kind
	PersonName string
	Direction  Direction
	Record     PunchRecord
	At         time.Time
}

// Named is implemented by people that carry a display name; the ledger copies
// it onto their punch events.
type Named interface {
	DisplayName() string
}

// Member is the directory-resolved person the HTTP service punches.
type Member struct {
	ID   string
	Name string
	Kind Kind
}

func (m Member) PersonID() string { return m.ID }

func (m Member) DisplayName() string { return m.Name }
