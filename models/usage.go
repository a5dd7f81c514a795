// models/usage.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// UsageRecord stores one free-form usage telemetry payload as submitted by
// the client. The payload is kept opaque.
type UsageRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
