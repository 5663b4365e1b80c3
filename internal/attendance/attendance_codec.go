package attendance

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptRecords marks a stored payload that can never be decoded.
var ErrCorruptRecords = errors.New("corrupt punch records")

// EncodeRecords serializes a ledger as a flat JSON list of
// {personId, date, inTime, outTime}. Absent times are encoded as null.
func EncodeRecords(records []PunchRecord) ([]byte, error) {
	if records == nil {
		records = []PunchRecord{}
	}
	return json.Marshal(records)
}

// DecodeRecords parses a payload written by EncodeRecords and rejects
// records that would break the one-record-per-person-per-day rule.
func DecodeRecords(payload []byte) ([]PunchRecord, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var records []PunchRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecords, err)
	}

	seen := make(map[recordKey]struct{}, len(records))
	for i, r := range records {
		if r.PersonID == "" {
			return nil, fmt.Errorf("%w: record %d has no personId", ErrCorruptRecords, i)
		}
		if _, err := time.Parse(DateLayout, r.Date); err != nil {
			return nil, fmt.Errorf("%w: record %d has invalid date %q", ErrCorruptRecords, i, r.Date)
		}
		k := recordKey{personID: r.PersonID, date: r.Date}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: duplicate record for %s on %s", ErrCorruptRecords, r.PersonID, r.Date)
		}
		seen[k] = struct{}{}
	}
	return records, nil
}

type recordKey struct {
	personID string
	date     string
}
