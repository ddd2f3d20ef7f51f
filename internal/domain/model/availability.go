package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Matrix dimensions of a weekly availability grid.
const (
	DaysPerWeek = 7
	HoursPerDay = 24
	WeekHours   = DaysPerWeek * HoursPerDay
)

// Availability is a day × hour grid; true means free. All grids are assumed
// to be expressed in one reference frame.
type Availability [DaysPerWeek][HoursPerDay]bool

// Free reports whether the cell is free. Out-of-range cells are not free.
func (a *Availability) Free(day, hour int) bool {
	if day < 0 || day >= DaysPerWeek || hour < 0 || hour >= HoursPerDay {
		return false
	}
	return a[day][hour]
}

// FullAvailability returns a grid that is free in every cell.
func FullAvailability() Availability {
	var a Availability
	for d := range a {
		for h := range a[d] {
			a[d][h] = true
		}
	}
	return a
}

// MarshalJSON encodes the grid as seven rows of 24 zero/one values.
func (a Availability) MarshalJSON() ([]byte, error) {
	rows := make([][]int, DaysPerWeek)
	for d := range a {
		row := make([]int, HoursPerDay)
		for h, free := range a[d] {
			if free {
				row[h] = 1
			}
		}
		rows[d] = row
	}
	return json.Marshal(rows)
}

// UnmarshalJSON accepts rows of numbers (non-zero = free) or booleans.
// Missing rows or cells stay "not free"; extra rows or cells are ignored.
func (a *Availability) UnmarshalJSON(b []byte) error {
	*a = Availability{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var rows [][]json.RawMessage
	if err := json.Unmarshal(b, &rows); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAvailability, err)
	}
	for d, row := range rows {
		if d >= DaysPerWeek {
			break
		}
		for h, cell := range row {
			if h >= HoursPerDay {
				break
			}
			free, err := decodeCell(cell)
			if err != nil {
				return fmt.Errorf("%w: day %d hour %d: %w", ErrInvalidAvailability, d, h, err)
			}
			a[d][h] = free
		}
	}
	return nil
}

func decodeCell(raw json.RawMessage) (bool, error) {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return false, err
	}
	return n != 0, nil
}
