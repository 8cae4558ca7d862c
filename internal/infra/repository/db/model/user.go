package model

import (
	"github.com/google/uuid"
)

type User struct {
	UserID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name           string    `gorm:"not null;type:varchar(100)"`
	Email          string    `gorm:"unique;not null;type:varchar(100)"`
	PasswordHash   string    `gorm:"not null;type:varchar(100)"`
	Phone          string    `gorm:"not null;type:varchar(50)"`
	Address        string    `gorm:"not null;type:varchar(255)"`
	SecurityAnswer string    `gorm:"not null;type:varchar(100)"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	Orders         []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}
