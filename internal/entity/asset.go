package entity

import "time"

const AssetTypeFile = "FILE"

// Asset is one uploaded file blob within a project. AssetName is the
// generated on-disk filename (randomKey_cleanedOriginalName); the original
// upload name is not retained separately.
type Asset struct {
	ID        uint      `json:"asset_id" gorm:"primaryKey"`
	ProjectID uint      `json:"-" gorm:"not null;uniqueIndex:idx_project_asset_name"`
	AssetType string    `json:"asset_type" gorm:"type:varchar(20);not null;default:FILE"`
	AssetName string    `json:"asset_name" gorm:"type:varchar(512);not null;uniqueIndex:idx_project_asset_name"`
	AssetSize int64     `json:"asset_size"`
	CreatedAt time.Time `json:"created_at"`

	Chunks []Chunk `json:"-" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

func (Asset) TableName() string {
	return "assets"
}
