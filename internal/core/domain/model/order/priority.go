package order

import (
	"fmt"
	"strings"

	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

// Priority orders the operator's work queue. The zero value is Normal, so a
// record that never carried a priority reads as Normal.
type Priority int

const (
	Normal Priority = iota
	Low
	High
	Urgent
)

var priorityNames = map[Priority]string{
	Normal: "Normal",
	Low:    "Low",
	High:   "High",
	Urgent: "Urgent",
}

// ParsePriority resolves a priority name case-insensitively. An empty string is Normal.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Normal, nil
	}
	for p, name := range priorityNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return Normal, errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%q is not a valid priority", s))
}

func (p Priority) Validate() error {
	if _, ok := priorityNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "Unknown"
}
