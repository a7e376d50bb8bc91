package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Module      string    `gorm:"size:40;index" json:"module"`
	Action      string    `gorm:"size:40;index" json:"action"`
	RecordID    string    `gorm:"size:64;index" json:"recordId,omitempty"`
	RecordName  string    `gorm:"size:180" json:"recordName,omitempty"`
	Changes     string    `gorm:"type:text" json:"changes,omitempty"`
	Description string    `gorm:"size:255" json:"description"`
	UserName    string    `gorm:"size:60" json:"userName"`
	Severity    Severity  `gorm:"type:varchar(10);default:INFO" json:"severity"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

type ActivityFilter struct {
	Module string
	Action string
	Start  *time.Time
	End    *time.Time
	Limit  int
}

type ActivityStats struct {
	Total    int64            `json:"total"`
	ByModule map[string]int64 `json:"byModule"`
	ByAction map[string]int64 `json:"byAction"`
	Recent   []ActivityLog    `json:"recent"`
}

type ActivityRepo interface {
	List(ctx context.Context, f ActivityFilter) ([]ActivityLog, error)
	ByRecord(ctx context.Context, module, recordID string) ([]ActivityLog, error)
	Save(ctx context.Context, l *ActivityLog) error
	Stats(ctx context.Context) (*ActivityStats, error)
}

// AppConfig is the key-value store for runtime-mutable settings (Telegram
// credentials, the notification counter).
type AppConfig struct {
	Key       string    `gorm:"primaryKey;size:80" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ConfigRepo interface {
	// Get returns "" without error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
