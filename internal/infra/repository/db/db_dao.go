package db

import (
	"fmt"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	)
}

func GetDbConn(dbName, dbHost, dbPort, dbUser, dbPas string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPas, dbName, dbPort)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
