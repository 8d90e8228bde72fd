package entity

// CompanyQualification is a tenant-owned rubric. It is structurally the same
// triad as the template side but keyed by company, and it carries no reference
// to the template it may have been materialized from: editing a template after
// a company copied it must never touch the copy.
type CompanyQualification struct {
	ID          int64       `gorm:"primaryKey"`
	CompanyID   int64       `gorm:"not null;index"`
	Name        string      `gorm:"not null"`
	SegmentType SegmentType `gorm:"not null;default:geral"`
	CreatedAt   int64       `gorm:"not null"`
	UpdatedAt   int64       `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Questions []*CompanyQuestion `gorm:"foreignKey:QualificationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CompanyQuestion struct {
	ID              int64  `gorm:"primaryKey"`
	QualificationID int64  `gorm:"not null;index"` // References: company_qualifications(id)
	Text            string `gorm:"not null"`
	Weight          int    `gorm:"not null"`
	Position        int    `gorm:"not null"`

	// Relations
	Answers []*CompanyAnswer `gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CompanyAnswer struct {
	ID         int64      `gorm:"primaryKey"`
	QuestionID int64      `gorm:"not null;index"` // References: company_questions(id)
	Tier       AnswerTier `gorm:"not null"`
	Text       string     `gorm:"not null"`
	Points     int        `gorm:"not null"`
}
