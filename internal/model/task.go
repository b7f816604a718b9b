package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the longest task title accepted, in runes.
const MaxTitleLength = 255

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = fmt.Errorf("title must be at most %d characters", MaxTitleLength)
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// StatusFilter narrows a task listing. The zero value behaves like StatusFilterAll.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterPending   StatusFilter = "pending"
	StatusFilterCompleted StatusFilter = "completed"
)

func (f StatusFilter) IsValid() bool {
	switch f {
	case "", StatusFilterAll, StatusFilterPending, StatusFilterCompleted:
		return true
	}
	return false
}

// Status returns the status a filter selects, or nil when it selects everything.
func (f StatusFilter) Status() *TaskStatus {
	switch f {
	case StatusFilterPending:
		s := TaskStatusPending
		return &s
	case StatusFilterCompleted:
		s := TaskStatusCompleted
		return &s
	}
	return nil
}

type Task struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NormalizeTitle trims surrounding whitespace and enforces the title limits.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
