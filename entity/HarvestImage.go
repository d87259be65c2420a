package entity

// HarvestImage rows are written only alongside a successful file upload
// during record creation. URL is resolved from the storage path at read
// time, never stored.
type HarvestImage struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	HarvestRecordID uint   `gorm:"column:harvest_record_id;index" json:"-"`
	StoragePath     string `gorm:"column:storage_path" json:"storagePath"`
	FileName        string `gorm:"column:file_name" json:"fileName"`
	FileSize        int64  `gorm:"column:file_size" json:"fileSize"`
	URL             string `gorm:"-" json:"url,omitempty"`
}

func (HarvestImage) TableName() string { return "harvest_images" }
