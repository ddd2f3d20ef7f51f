// Package availability converts weekly time slots into hour grids and
// computes shared free time across a group.
package availability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/teamfit/internal/domain/model"
)

const minutesPerHour = 60

// Slot is a free interval on one day of the week. Day 0 is Sunday.
// Start and End use 24-hour "HH:MM"; End may be "24:00".
type Slot struct {
	Day   int    `json:"dayOfWeek" yaml:"day"`
	Start string `json:"startTime" yaml:"start"`
	End   string `json:"endTime" yaml:"end"`
}

// Window is a maximal run of free hours on one day.
type Window struct {
	Day   int    `json:"dayOfWeek"`
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// FromSlots builds an hour grid from slots. An hour is free only when a
// slot covers all of it.
func FromSlots(slots []Slot) (model.Availability, error) {
	var grid model.Availability
	for i, s := range slots {
		if s.Day < 0 || s.Day >= model.DaysPerWeek {
			return model.Availability{}, fmt.Errorf("%w: slot %d: day %d out of range", ErrInvalidSlot, i, s.Day)
		}
		start, err := parseClock(s.Start)
		if err != nil {
			return model.Availability{}, fmt.Errorf("%w: slot %d: start: %w", ErrInvalidSlot, i, err)
		}
		end, err := parseClock(s.End)
		if err != nil {
			return model.Availability{}, fmt.Errorf("%w: slot %d: end: %w", ErrInvalidSlot, i, err)
		}
		if end <= start {
			return model.Availability{}, fmt.Errorf("%w: slot %d: end %s not after start %s", ErrInvalidSlot, i, s.End, s.Start)
		}
		// first whole hour at or after start, up to the last whole hour ending by end
		first := (start + minutesPerHour - 1) / minutesPerHour
		last := end / minutesPerHour
		for h := first; h < last; h++ {
			grid[s.Day][h] = true
		}
	}
	return grid, nil
}

// Common returns the cells in which every grid is free. An empty input
// has no shared free time.
func Common(grids []model.Availability) model.Availability {
	var out model.Availability
	if len(grids) == 0 {
		return out
	}
	for d := 0; d < model.DaysPerWeek; d++ {
		for h := 0; h < model.HoursPerDay; h++ {
			free := true
			for i := range grids {
				if !grids[i][d][h] {
					free = false
					break
				}
			}
			out[d][h] = free
		}
	}
	return out
}

// FreeHours counts the free cells of a grid.
func FreeHours(grid model.Availability) int {
	n := 0
	for d := range grid {
		for _, free := range grid[d] {
			if free {
				n++
			}
		}
	}
	return n
}

// Windows lists the maximal contiguous free ranges, ordered by day then time.
func Windows(grid model.Availability) []Window {
	var out []Window
	for d := 0; d < model.DaysPerWeek; d++ {
		h := 0
		for h < model.HoursPerDay {
			if !grid[d][h] {
				h++
				continue
			}
			start := h
			for h < model.HoursPerDay && grid[d][h] {
				h++
			}
			out = append(out, Window{Day: d, Start: formatHour(start), End: formatHour(h)})
		}
	}
	return out
}

// parseClock converts "HH:MM" (or "HH:MM:SS", seconds ignored) into minutes
// since midnight. "24:00" is accepted as end of day.
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed hour in %q", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed minute in %q", s)
	}
	if hh < 0 || hh > model.HoursPerDay || mm < 0 || mm >= minutesPerHour || (hh == model.HoursPerDay && mm != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hh*minutesPerHour + mm, nil
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
