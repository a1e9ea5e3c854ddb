package models

type Thread struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Code   string `gorm:"not null"`
	Name   string
	Hex    string
	// Owned is stored as 0/1.
	Owned int `gorm:"not null;default:0"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
