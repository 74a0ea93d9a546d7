package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a user's isolated namespace for uploaded assets and their
// derived chunks/vectors. ProjectCode is the integer the user supplies and
// addresses the project by; ID is the internal serial key used in the
// vector collection name. ID never appears in URLs; handlers report it in
// response bodies as project_id.
type Project struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"project_uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uint      `json:"-" gorm:"not null;uniqueIndex:idx_user_project_code"`
	ProjectCode int       `json:"project_code" gorm:"not null;uniqueIndex:idx_user_project_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Assets []Asset `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Chunks []Chunk `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}
