// Package database 负责初始化并持有全局的数据库连接。
package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/log"
)

var DB *gorm.DB

// InitMySQL 初始化 MySQL 数据库连接并迁移目录表结构。
func InitMySQL(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	// 配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移所有目录实体表。记录只会被 Archived 标记，不会被物理删除，
	// 因此没有任何表使用 gorm 的 DeletedAt。
	if err := AutoMigrate(DB); err != nil {
		log.Fatal("failed to migrate database schema", err)
	}

	log.Info("MySQL database connected successfully")
}

// AutoMigrate 迁移应用的全部表结构，测试中也会用它初始化内存数据库。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.MethodFamily{},
		&model.SpinState{},
		&model.ElectronicState{},
		&model.Molecule{},
		&model.BaseMethodSimple{},
		&model.ElectronicStateMethodFamilySimple{},
		&model.SpinStateElectronicStateMethodFamilySimple{},
		&model.FullMethodSimple{},
		&model.ExperimentSimple{},
		&model.Attachment{},
	)
}
