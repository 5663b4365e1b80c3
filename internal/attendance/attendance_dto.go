package attendance

import "time"

// PunchRequest is optional: an empty body punches the caller themself.
type PunchRequest struct {
	PersonID string `json:"person_id" binding:"omitempty,uuid"`
}

type PunchRecordResponse struct {
	PersonID      string     `json:"person_id"`
	PersonName    string     `json:"person_name,omitempty"`
	Date          string     `json:"date"`
	InTime        *time.Time `json:"in_time"`
	OutTime       *time.Time `json:"out_time"`
	Status        string     `json:"status"`
	WorkedMinutes *int       `json:"worked_minutes,omitempty"`
}

type PunchResponse struct {
	Direction Direction           `json:"direction"`
	Record    PunchRecordResponse `json:"record"`
}

const (
	statusIn  = "IN"
	statusOut = "OUT"
)

func mapToResponse(r PunchRecord, name string) PunchRecordResponse {
	resp := PunchRecordResponse{
		PersonID:   r.PersonID,
		PersonName: name,
		Date:       r.Date,
		InTime:     r.InTime,
		OutTime:    r.OutTime,
		Status:     statusIn,
	}
	if r.InTime != nil && r.OutTime != nil {
		resp.Status = statusOut
		minutes := int(r.OutTime.Sub(*r.InTime) / time.Minute)
		resp.WorkedMinutes = &minutes
	}
	return resp
}
