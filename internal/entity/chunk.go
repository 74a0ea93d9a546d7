package entity

// Chunk is a bounded slice of an asset's text, persisted alongside its
// vector record in the index. ChunkMetadata carries chunk_index,
// chunking_method and any parser-provided keys (page, source) as JSON.
type Chunk struct {
	ID             uint   `json:"chunk_id" gorm:"primaryKey"`
	ProjectID      uint   `json:"-" gorm:"not null;index:idx_project_asset"`
	AssetID        uint   `json:"asset_id" gorm:"not null;index:idx_project_asset"`
	ChunkText      string `json:"chunk_text" gorm:"type:text;not null"`
	ChunkMetadata  string `json:"chunk_metadata" gorm:"type:jsonb"`
	ChunkOrder     int    `json:"chunk_order" gorm:"not null"`
}

func (Chunk) TableName() string {
	return "chunks"
}
