package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/hash"
)

// createAdminCmd 创建一个管理员账号。用户名已存在时提升其角色而不是报错，
// 方便把普通用户升级为管理员。
func createAdminCmd() *cobra.Command {
	var username, password, displayName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "创建或提升一个管理员账号",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("必须同时指定 --username 和 --password")
			}

			userRepo := repository.NewUserRepository(database.DB)
			existing, err := userRepo.FindByUsername(username)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil && err == nil {
				if existing.Role == service.RoleAdmin {
					fmt.Printf("用户 '%s' 已经是管理员\n", username)
					return nil
				}
				existing.Role = service.RoleAdmin
				if err := userRepo.Update(existing); err != nil {
					return err
				}
				fmt.Printf("已将用户 '%s' 提升为管理员\n", username)
				return nil
			}

			hashed, err := hash.HashPassword(password)
			if err != nil {
				return err
			}
			user := &model.User{
				Username:    username,
				Password:    hashed,
				DisplayName: displayName,
				Role:        service.RoleAdmin,
			}
			if err := userRepo.Create(user); err != nil {
				return err
			}
			fmt.Printf("管理员 '%s' 创建成功 (ID: %d)\n", username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "登录名")
	cmd.Flags().StringVar(&password, "password", "", "初始口令")
	cmd.Flags().StringVar(&displayName, "name", "", "显示名称 (可选)")
	return cmd
}
