package entity

// User is the local mirror of an identity-provider account. The provider owns
// credentials; this row owns the role flag and tenant membership the rubric
// services authorize against.
type User struct {
	ID            int64  `gorm:"primaryKey"`
	SubUUID       string `gorm:"not null;uniqueIndex"`
	Username      string `gorm:"not null"`
	Email         string `gorm:"not null"`
	EmailVerified bool   `gorm:"not null"`
	IsAdmin       bool   `gorm:"not null;default:false"`
	CompanyID     int64  `gorm:"not null;default:0"` // 0 means no tenant membership
	Active        bool   `gorm:"not null;default:true"`
	Suspended     bool   `gorm:"not null;default:false"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null;autoUpdateTime:false"`
}
