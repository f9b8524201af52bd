package models

import (
	"fmt"
	"time"
)

// Courses lists the JRA racecourses selectable for a race
var Courses = []string{"札幌", "函館", "福島", "新潟", "東京", "中山", "中京", "京都", "阪神", "小倉"}

// Grades lists the race grades, empty meaning unset
var Grades = []string{"", "G1", "G2", "G3", "OP", "条件"}

// RaceMeta identifies the race a session is looking at
type RaceMeta struct {
	Date     string `json:"date" validate:"omitempty,len=8,numeric"`
	Course   string `json:"course"`
	Number   int    `json:"number" validate:"omitempty,gte=1,lte=12"`
	RaceID   string `json:"race_id,omitempty"`
	Name     string `json:"race_name,omitempty"`
	Grade    string `json:"grade,omitempty"`
	PostTime string `json:"post_time,omitempty"`
}

// Validate checks the closed-set fields of the meta
func (m *RaceMeta) Validate() error {
	if m.Date != "" {
		if _, err := time.Parse("20060102", m.Date); err != nil {
			return fmt.Errorf("%w: date %q", ErrInvalidRaceMeta, m.Date)
		}
	}
	if m.Course != "" && !contains(Courses, m.Course) {
		return fmt.Errorf("%w: course %q", ErrInvalidRaceMeta, m.Course)
	}
	if m.Number != 0 && (m.Number < 1 || m.Number > 12) {
		return fmt.Errorf("%w: race number %d", ErrInvalidRaceMeta, m.Number)
	}
	if !contains(Grades, m.Grade) {
		return fmt.Errorf("%w: grade %q", ErrInvalidRaceMeta, m.Grade)
	}
	return nil
}

// Label returns the short heading used for the race, e.g. "東京 11R"
func (m *RaceMeta) Label() string {
	if m.Course == "" || m.Number == 0 {
		return ""
	}
	return fmt.Sprintf("%s %dR", m.Course, m.Number)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
