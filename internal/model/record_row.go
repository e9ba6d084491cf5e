package model

import "time"

// RecordRow SQL 后端的一行记录（address 为主键，hex 编码）
type RecordRow struct {
	Address   string `gorm:"primaryKey;type:varchar(64)"`
	Namespace string `gorm:"type:varchar(32);index:idx_record_ns;not null"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RecordRow) TableName() string { return "records" }
