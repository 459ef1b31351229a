package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/storage"
	"qcmeta-go/pkg/token"
)

// ExperimentService 接口定义了实验记录及其附件的业务操作。
// 附件是计算程序的输出文件，内容存放在 MinIO，数据库只保留元数据。
type ExperimentService interface {
	Create(input ExperimentInput) (*model.ExperimentIntermediate, error)
	Update(id uint, input ExperimentInput) (*model.ExperimentIntermediate, error)
	Get(id uint) (*model.ExperimentFull, error)
	List(includeArchived bool, page, pageSize int) ([]model.ExperimentIntermediate, int64, error)
	ListByMolecule(moleculeID uint, includeArchived bool) ([]model.ExperimentIntermediate, error)
	ListByFullMethod(fullMethodID uint, includeArchived bool) ([]model.ExperimentIntermediate, error)
	Records() ([]model.Record, error)
	Archive(id uint) error
	Restore(id uint) error

	UploadAttachment(ctx context.Context, experimentID uint, fileName, contentType string, size int64, reader io.Reader, uploadedBy uint) (*model.Attachment, error)
	ListAttachments(experimentID uint) ([]model.Attachment, error)
	AttachmentDownloadURL(attachmentID uint) (string, error)
	DeleteAttachment(ctx context.Context, attachmentID uint) error
}

// experimentService 是 ExperimentService 接口的实现。
type experimentService struct {
	repo           repository.ExperimentRepository
	moleculeRepo   repository.CatalogRepository[model.Molecule]
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple]
	attachmentRepo repository.AttachmentRepository
	hydrator       *Hydrator
	announcer      announcer
	bucketName     string
}

// NewExperimentService 创建一个新的 ExperimentService 实例。
func NewExperimentService(
	repo repository.ExperimentRepository,
	moleculeRepo repository.CatalogRepository[model.Molecule],
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple],
	attachmentRepo repository.AttachmentRepository,
	hydrator *Hydrator,
	publisher IndexPublisher,
	notifier ChangeNotifier,
	bucketName string,
) ExperimentService {
	return &experimentService{
		repo:           repo,
		moleculeRepo:   moleculeRepo,
		fullMethodRepo: fullMethodRepo,
		attachmentRepo: attachmentRepo,
		hydrator:       hydrator,
		announcer:      announcer{publisher: publisher, notifier: notifier},
		bucketName:     bucketName,
	}
}

// Create 创建一条新的实验记录，分子与完整方法都是必需关联。
func (s *experimentService) Create(input ExperimentInput) (*model.ExperimentIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.TotalEnergy != nil && input.EnergyUnit == "" {
		return nil, fmt.Errorf("%w: 填写总能量时必须指定能量单位", ErrInvalidInput)
	}
	molecule, err := loadRelated(s.moleculeRepo, input.MoleculeID, "分子")
	if err != nil {
		return nil, err
	}
	fullMethod, err := loadRelated(s.fullMethodRepo, input.FullMethodID, "完整方法")
	if err != nil {
		return nil, err
	}

	experiment := &model.ExperimentSimple{
		EntityMeta:   model.NewEntityMeta(input.Keyword, input.Name),
		MoleculeID:   molecule.ID,
		FullMethodID: fullMethod.ID,
		TotalEnergy:  input.TotalEnergy,
		EnergyUnit:   input.EnergyUnit,
	}
	experiment.RichDescription = input.RichDescription
	experiment.PlainDescription = input.PlainDescription
	if err := s.repo.Create(experiment); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeExperiment, experiment.ID, model.ActionCreated, experiment.Label())

	moleculeRecord := molecule.ToRecord()
	methodRecord := fullMethod.ToRecord()
	return experiment.ToIntermediate(&moleculeRecord, &methodRecord)
}

// Update 更新一条已存在的实验记录。
func (s *experimentService) Update(id uint, input ExperimentInput) (*model.ExperimentIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.TotalEnergy != nil && input.EnergyUnit == "" {
		return nil, fmt.Errorf("%w: 填写总能量时必须指定能量单位", ErrInvalidInput)
	}
	experiment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	molecule, err := loadRelated(s.moleculeRepo, input.MoleculeID, "分子")
	if err != nil {
		return nil, err
	}
	fullMethod, err := loadRelated(s.fullMethodRepo, input.FullMethodID, "完整方法")
	if err != nil {
		return nil, err
	}

	applyCatalogInput(&experiment.EntityMeta, input.CatalogInput)
	experiment.MoleculeID = molecule.ID
	experiment.FullMethodID = fullMethod.ID
	experiment.TotalEnergy = input.TotalEnergy
	experiment.EnergyUnit = input.EnergyUnit
	if err := s.repo.Update(experiment); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeExperiment, experiment.ID, model.ActionUpdated, experiment.Label())

	moleculeRecord := molecule.ToRecord()
	methodRecord := fullMethod.ToRecord()
	return experiment.ToIntermediate(&moleculeRecord, &methodRecord)
}

// Get 返回一条实验记录的 Full 形态，递归内嵌分子和完整方法。
func (s *experimentService) Get(id uint) (*model.ExperimentFull, error) {
	return s.hydrator.ExperimentFull(id)
}

// List 分页返回实验记录的 Intermediate 列表。
func (s *experimentService) List(includeArchived bool, page, pageSize int) ([]model.ExperimentIntermediate, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	experiments, total, err := s.repo.FindWithPagination(includeArchived, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.toIntermediates(experiments)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByMolecule 返回某个分子下的全部实验记录。
func (s *experimentService) ListByMolecule(moleculeID uint, includeArchived bool) ([]model.ExperimentIntermediate, error) {
	experiments, err := s.repo.FindByMoleculeID(moleculeID, includeArchived)
	if err != nil {
		return nil, err
	}
	return s.toIntermediates(experiments)
}

// ListByFullMethod 返回使用某个完整方法的全部实验记录。
func (s *experimentService) ListByFullMethod(fullMethodID uint, includeArchived bool) ([]model.ExperimentIntermediate, error) {
	experiments, err := s.repo.FindByFullMethodID(fullMethodID, includeArchived)
	if err != nil {
		return nil, err
	}
	return s.toIntermediates(experiments)
}

// Records 返回供下拉列表使用的实验 Record 投影。
func (s *experimentService) Records() ([]model.Record, error) {
	return s.repo.FindRecords()
}

// Archive 归档一条实验记录。
func (s *experimentService) Archive(id uint) error {
	if err := s.repo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange[model.ExperimentSimple](s.announcer, s.repo, model.EntityTypeExperiment, id, model.ActionArchived)
	return nil
}

// Restore 取消一条实验记录的归档。
func (s *experimentService) Restore(id uint) error {
	if err := s.repo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange[model.ExperimentSimple](s.announcer, s.repo, model.EntityTypeExperiment, id, model.ActionRestored)
	return nil
}

// UploadAttachment 把一个计算输出文件写入对象存储并登记其元数据。
// 对象键带随机前缀，避免同名文件互相覆盖。
func (s *experimentService) UploadAttachment(ctx context.Context, experimentID uint, fileName, contentType string, size int64, reader io.Reader, uploadedBy uint) (*model.Attachment, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: 文件名不能为空", ErrInvalidInput)
	}
	if _, err := s.repo.FindByID(experimentID); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("experiments/%d/%s_%s", experimentID, token.GenerateRandomString(8), fileName)
	if err := storage.UploadObject(ctx, s.bucketName, objectKey, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("上传附件失败: %w", err)
	}

	attachment := &model.Attachment{
		ExperimentID: experimentID,
		FileName:     fileName,
		ObjectKey:    objectKey,
		ContentType:  contentType,
		Size:         size,
		UploadedBy:   uploadedBy,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		// 元数据落库失败时回收已上传的对象，避免留下孤儿文件
		_ = storage.RemoveObject(ctx, s.bucketName, objectKey)
		return nil, err
	}
	return attachment, nil
}

// ListAttachments 返回一条实验记录下的全部附件。
func (s *experimentService) ListAttachments(experimentID uint) ([]model.Attachment, error) {
	return s.attachmentRepo.FindByExperimentID(experimentID)
}

// AttachmentDownloadURL 为附件生成一个限时的预签名下载链接。
func (s *experimentService) AttachmentDownloadURL(attachmentID uint) (string, error) {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		return "", err
	}
	return storage.GetPresignedURL(s.bucketName, attachment.ObjectKey, 15*time.Minute)
}

// DeleteAttachment 删除附件的对象和元数据。
func (s *experimentService) DeleteAttachment(ctx context.Context, attachmentID uint) error {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		return err
	}
	if err := storage.RemoveObject(ctx, s.bucketName, attachment.ObjectKey); err != nil {
		return fmt.Errorf("删除附件对象失败: %w", err)
	}
	return s.attachmentRepo.Delete(attachmentID)
}

// toIntermediates 把一批 Simple 形态的实验记录升级为 Intermediate 形态。
func (s *experimentService) toIntermediates(experiments []model.ExperimentSimple) ([]model.ExperimentIntermediate, error) {
	molecules, err := relatedRecords(s.moleculeRepo)
	if err != nil {
		return nil, err
	}
	methods, err := relatedRecords(s.fullMethodRepo)
	if err != nil {
		return nil, err
	}

	items := make([]model.ExperimentIntermediate, 0, len(experiments))
	for _, experiment := range experiments {
		molecule, ok := molecules[experiment.MoleculeID]
		if !ok {
			return nil, fmt.Errorf("实验 %d 引用的分子 %d 不存在", experiment.ID, experiment.MoleculeID)
		}
		method, ok := methods[experiment.FullMethodID]
		if !ok {
			return nil, fmt.Errorf("实验 %d 引用的完整方法 %d 不存在", experiment.ID, experiment.FullMethodID)
		}
		inter, err := experiment.ToIntermediate(&molecule, &method)
		if err != nil {
			return nil, err
		}
		items = append(items, *inter)
	}
	return items, nil
}
