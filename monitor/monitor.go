// Package monitor holds the deployment-side domain: location and schedule
// normalization for the synthetics backend, Kibana URL cleanup, and the
// persistent record of every journey this server has composed and pushed.
package monitor

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrMonitorNotFound is returned when a monitor record is not found.
	ErrMonitorNotFound = errors.New("monitor record not found")

	// ErrInvalidTestName is returned when the test name is empty.
	ErrInvalidTestName = errors.New("test_name is required")

	// ErrInvalidWebsiteURL is returned when the website URL is empty.
	ErrInvalidWebsiteURL = errors.New("website_url is required")

	// ErrInvalidFilePath is returned when the journey file path is empty.
	ErrInvalidFilePath = errors.New("file_path is required")
)

// Source records which generator produced the journey's step content.
type Source string

const (
	SourceHeuristic Source = "heuristic"
	SourceModel     Source = "model"
)

// IsValid checks if the source is valid.
func (s Source) IsValid() bool {
	switch s {
	case SourceHeuristic, SourceModel:
		return true
	default:
		return false
	}
}

// Status tracks the deployment outcome of a composed journey.
type Status string

const (
	StatusCreated       Status = "created"
	StatusDeployed      Status = "deployed"
	StatusDeployFailed  Status = "deploy_failed"
	StatusDeployTimeout Status = "deploy_timeout"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusDeployed, StatusDeployFailed, StatusDeployTimeout:
		return true
	default:
		return false
	}
}

// Monitor is the persisted record of one composed journey and its most
// recent deployment attempt.
type Monitor struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TestName        string    `json:"test_name" gorm:"type:varchar(255);not null;index:idx_monitors_test_name"`
	WebsiteURL      string    `json:"website_url" gorm:"type:varchar(2048);not null"`
	FilePath        string    `json:"file_path" gorm:"type:varchar(512);not null"`
	Locations       string    `json:"locations" gorm:"type:varchar(512);not null"`
	ScheduleMinutes int       `json:"schedule_minutes" gorm:"not null"`
	Source          Source    `json:"source" gorm:"type:varchar(20);not null"`
	Status          Status    `json:"status" gorm:"type:varchar(20);not null;default:'created';index:idx_monitors_status"`
	MonitorURL      *string   `json:"monitor_url,omitempty" gorm:"type:varchar(2048)"`
	MonitorID       *string   `json:"monitor_id,omitempty" gorm:"type:char(36)"`
	ErrorMessage    *string   `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Monitor) TableName() string {
	return "monitors"
}

// BeforeCreate hook to generate UUID before creating a new record.
func (m *Monitor) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Validate checks if the monitor record has valid required fields.
func (m *Monitor) Validate() error {
	if m.TestName == "" {
		return ErrInvalidTestName
	}
	if m.WebsiteURL == "" {
		return ErrInvalidWebsiteURL
	}
	if m.FilePath == "" {
		return ErrInvalidFilePath
	}
	if !m.Source.IsValid() {
		return errors.New("invalid source")
	}
	if !m.Status.IsValid() {
		return errors.New("invalid status")
	}
	return nil
}
