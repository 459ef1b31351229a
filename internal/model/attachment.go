// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Attachment 对应于数据库中的 'attachments' 表。
// 它记录了挂在某次实验下的计算输出文件（如 Gaussian/ORCA 的输出）
// 在对象存储中的位置和元数据。文件内容本身存放在 MinIO 里。
type Attachment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// ExperimentID 指向所属的实验记录。
	ExperimentID uint `gorm:"not null;index" json:"experimentId"`
	// FileName 是上传时的原始文件名。
	FileName string `gorm:"type:varchar(255);not null" json:"fileName"`
	// ObjectKey 是文件在 MinIO 存储桶中的对象键。
	ObjectKey string `gorm:"type:varchar(512);not null" json:"objectKey"`
	// ContentType 是上传时声明的 MIME 类型。
	ContentType string `gorm:"type:varchar(100)" json:"contentType"`
	// Size 是文件大小（字节）。
	Size int64 `gorm:"not null" json:"size"`
	// UploadedBy 记录了上传者的用户 ID。
	UploadedBy uint   `gorm:"not null" json:"uploadedBy"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Attachment) TableName() string {
	return "attachments"
}
