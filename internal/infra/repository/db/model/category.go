package model

type Category struct {
	CategoryID uint      `gorm:"primaryKey"`
	Name       string    `gorm:"not null;type:varchar(100)"`
	Slug       string    `gorm:"not null;type:varchar(100);uniqueIndex"`
	Products   []Product `gorm:"foreignKey:CategoryID"`
	BaseModel
}
