package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryLog records one successful answer: the question, the generated
// response, and how long the whole answer took (search through generation).
type QueryLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UUID           uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uint      `json:"-" gorm:"not null;index"`
	Question       string    `json:"question" gorm:"type:text;not null"`
	LLMResponse    string    `json:"llm_response" gorm:"type:text;not null"`
	ResponseTimeMS int64     `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}

func (q *QueryLog) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == uuid.Nil {
		q.UUID = uuid.New()
	}
	return nil
}
