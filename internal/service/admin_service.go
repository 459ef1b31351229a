package service

import (
	"errors"
	"fmt"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/tasks"
)

// UserListResponse 定义了用户列表 API 的响应结构。
type UserListResponse struct {
	Content       []UserDetailResponse `json:"content"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
	Size          int                  `json:"size"`
	Number        int                  `json:"number"`
}

// UserDetailResponse 定义了用户列表项的详细结构。
type UserDetailResponse struct {
	UserID      uint            `json:"userId"`
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName"`
	Role        string          `json:"role"`
	CreatedAt   model.LocalTime `json:"createdAt"`
}

// AdminService 接口定义了所有管理员相关的业务操作。
type AdminService interface {
	ListUsers(page, size int) (*UserListResponse, error)
	UpdateUserRole(userID uint, role string) error
	ReindexAll() (int, error)
}

// adminService 是 AdminService 接口的实现。
type adminService struct {
	userRepo  repository.UserRepository
	hydrator  *Hydrator
	publisher IndexPublisher
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(userRepo repository.UserRepository, hydrator *Hydrator, publisher IndexPublisher) AdminService {
	return &adminService{
		userRepo:  userRepo,
		hydrator:  hydrator,
		publisher: publisher,
	}
}

// ListUsers 分页返回全部用户。
func (s *adminService) ListUsers(page, size int) (*UserListResponse, error) {
	offset, limit := pageToOffset(page, size)
	users, total, err := s.userRepo.FindWithPagination(offset, limit)
	if err != nil {
		return nil, err
	}

	content := make([]UserDetailResponse, 0, len(users))
	for _, user := range users {
		content = append(content, UserDetailResponse{
			UserID:      user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Role:        user.Role,
			CreatedAt:   model.LocalTime(user.CreatedAt),
		})
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &UserListResponse{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          limit,
		Number:        page,
	}, nil
}

// UpdateUserRole 修改一个用户的角色。
func (s *adminService) UpdateUserRole(userID uint, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("%w: 未知的角色 '%s'", ErrInvalidInput, role)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Role = role
	return s.userRepo.Update(user)
}

// ReindexAll 为数据库中的每一条目录记录重新投递索引任务：
// 未归档的记录重建文档，已归档的记录删除残留文档。
// 返回投递的任务总数。
func (s *adminService) ReindexAll() (int, error) {
	published := 0
	for _, entityType := range model.AllEntityTypes {
		allIDs, err := s.entityIDs(entityType, true)
		if err != nil {
			return published, fmt.Errorf("枚举 %s 失败: %w", entityType, err)
		}
		activeIDs, err := s.entityIDs(entityType, false)
		if err != nil {
			return published, fmt.Errorf("枚举 %s 失败: %w", entityType, err)
		}
		active := make(map[uint]bool, len(activeIDs))
		for _, id := range activeIDs {
			active[id] = true
		}

		for _, id := range allIDs {
			action := tasks.ActionDelete
			if active[id] {
				action = tasks.ActionIndex
			}
			s.publisher.PublishIndexTask(tasks.IndexTask{
				EntityType: entityType,
				EntityID:   id,
				Action:     action,
			})
			published++
		}
		log.Infof("[AdminService] %s: 投递了 %d 个索引任务", entityType, len(allIDs))
	}
	return published, nil
}

// entityIDs 返回某个实体族的全部主键。
func (s *adminService) entityIDs(entityType string, includeArchived bool) ([]uint, error) {
	switch entityType {
	case model.EntityTypeMethodFamily:
		return s.hydrator.familyRepo.FindAllIDs(includeArchived)
	case model.EntityTypeSpinState:
		return s.hydrator.spinStateRepo.FindAllIDs(includeArchived)
	case model.EntityTypeElectronicState:
		return s.hydrator.stateRepo.FindAllIDs(includeArchived)
	case model.EntityTypeMolecule:
		return s.hydrator.moleculeRepo.FindAllIDs(includeArchived)
	case model.EntityTypeBaseMethod:
		return s.hydrator.baseMethodRepo.FindAllIDs(includeArchived)
	case model.EntityTypeElectronicStateMethodFamily:
		return s.hydrator.esmfRepo.FindAllIDs(includeArchived)
	case model.EntityTypeSpinStateElectronicStateMethodFamily:
		return s.hydrator.ssesmfRepo.FindAllIDs(includeArchived)
	case model.EntityTypeFullMethod:
		return s.hydrator.fullMethodRepo.FindAllIDs(includeArchived)
	case model.EntityTypeExperiment:
		return s.hydrator.experimentRepo.FindAllIDs(includeArchived)
	default:
		return nil, errors.New("未知的实体类型 " + entityType)
	}
}
