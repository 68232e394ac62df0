// Package jobs provides a database backed queue for asynchronous work, used
// for on-demand transaction history syncs triggered over HTTP.
package jobs

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job represents one unit of asynchronous work.
type Job struct {
	ID        uuid.UUID              `json:"jobId" gorm:"column:id;primary_key;type:uuid;"`
	Type      string                 `json:"type" gorm:"column:type"`
	Do        func() (string, error) `json:"-" gorm:"-"`
	Status    Status                 `json:"status" gorm:"column:status"`
	Error     string                 `json:"-" gorm:"column:error"`
	Result    string                 `json:"result" gorm:"column:result"`
	CreatedAt time.Time              `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time              `json:"updatedAt" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt         `json:"-" gorm:"column:deleted_at;index"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

type Status int

const (
	Unknown Status = iota
	Init
	Accepted
	QueueFull
	Error
	Complete
)

func (s Status) String() string {
	switch s {
	default:
		return "unknown"
	case Init:
		return "init"
	case Accepted:
		return "accepted"
	case QueueFull:
		return "queuefull"
	case Error:
		return "error"
	case Complete:
		return "complete"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = StatusFromText(string(text))
	return nil
}

func StatusFromText(text string) Status {
	switch strings.ToLower(text) {
	default:
		return Unknown
	case "init":
		return Init
	case "accepted":
		return Accepted
	case "queuefull":
		return QueueFull
	case "error":
		return Error
	case "complete":
		return Complete
	}
}
