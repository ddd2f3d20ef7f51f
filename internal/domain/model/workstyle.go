package model

import (
	"fmt"
	"strings"
)

// Communication is the preferred communication mode of a candidate.
//
// Ordinal positions on [0,1]:
//
//	async  = 0
//	hybrid = 0.5
//	sync   = 1
//
// CommunicationUnspecified sits at the neutral 0.5.
type Communication int

const (
	CommunicationUnspecified Communication = iota
	CommunicationAsync
	CommunicationHybrid
	CommunicationSync
)

// Position returns the ordinal position of the mode on [0,1].
func (c Communication) Position() float64 {
	switch c {
	case CommunicationAsync:
		return 0
	case CommunicationSync:
		return 1
	default:
		return 0.5
	}
}

func (c Communication) String() string {
	switch c {
	case CommunicationAsync:
		return "async"
	case CommunicationHybrid:
		return "hybrid"
	case CommunicationSync:
		return "sync"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Communication) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is
// case-insensitive; an empty value decodes to CommunicationUnspecified.
func (c *Communication) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "":
		*c = CommunicationUnspecified
	case "async":
		*c = CommunicationAsync
	case "hybrid":
		*c = CommunicationHybrid
	case "sync":
		*c = CommunicationSync
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommunication, string(b))
	}
	return nil
}

// Pace is the preferred working pace of a candidate.
//
// Ordinal positions on [0,1]:
//
//	chill    = 0
//	balanced = 0.5
//	intense  = 1
//
// PaceUnspecified sits at the neutral 0.5.
type Pace int

const (
	PaceUnspecified Pace = iota
	PaceChill
	PaceBalanced
	PaceIntense
)

// Position returns the ordinal position of the pace on [0,1].
func (p Pace) Position() float64 {
	switch p {
	case PaceChill:
		return 0
	case PaceIntense:
		return 1
	default:
		return 0.5
	}
}

func (p Pace) String() string {
	switch p {
	case PaceChill:
		return "chill"
	case PaceBalanced:
		return "balanced"
	case PaceIntense:
		return "intense"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pace) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pace) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "":
		*p = PaceUnspecified
	case "chill":
		*p = PaceChill
	case "balanced":
		*p = PaceBalanced
	case "intense":
		*p = PaceIntense
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPace, string(b))
	}
	return nil
}

// WorkStyle captures how a candidate likes to collaborate.
type WorkStyle struct {
	Communication    Communication `json:"communication,omitempty"`
	Pace             Pace          `json:"pace,omitempty"`
	MeetingFrequency *int          `json:"meetingFrequency,omitempty"` // 0..10
}

// MeetingPosition returns the meeting frequency scaled to [0,1], falling
// back to fallback (already on the 0..10 scale) when none is stated.
func (w *WorkStyle) MeetingPosition(fallback int) float64 {
	v := fallback
	if w != nil && w.MeetingFrequency != nil {
		v = *w.MeetingFrequency
	}
	return float64(clamp(v, MinMeetingFrequency, MaxMeetingFrequency)) / MaxMeetingFrequency
}

// CommunicationPosition tolerates a nil work style.
func (w *WorkStyle) CommunicationPosition() float64 {
	if w == nil {
		return CommunicationUnspecified.Position()
	}
	return w.Communication.Position()
}

// PacePosition tolerates a nil work style.
func (w *WorkStyle) PacePosition() float64 {
	if w == nil {
		return PaceUnspecified.Position()
	}
	return w.Pace.Position()
}
