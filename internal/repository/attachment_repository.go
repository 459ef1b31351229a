package repository

import (
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
)

// AttachmentRepository 管理实验附件的元数据记录。
// 附件不走归档流程，删除记录的同时会由服务层移除对象存储中的文件。
type AttachmentRepository interface {
	Create(attachment *model.Attachment) error
	FindByID(id uint) (*model.Attachment, error)
	FindByExperimentID(experimentID uint) ([]model.Attachment, error)
	Delete(id uint) error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository 创建一个新的 AttachmentRepository 实例。
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	return r.db.Create(attachment).Error
}

func (r *attachmentRepository) FindByID(id uint) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.First(&attachment, id).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) FindByExperimentID(experimentID uint) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.Where("experiment_id = ?", experimentID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

func (r *attachmentRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Attachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
