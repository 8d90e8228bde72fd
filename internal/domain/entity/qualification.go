package entity

// SegmentType tags a rubric with the market segment it was written for.
type SegmentType string

const (
	SegmentGeneral    SegmentType = "geral"
	SegmentProducts   SegmentType = "produtos"
	SegmentConsortium SegmentType = "consorcio"
	SegmentInsurance  SegmentType = "seguros"
)

// AnswerTier is one of the three qualitative answer buckets of a question.
// The domain language is Portuguese; the values below are stored as-is.
type AnswerTier string

const (
	TierCold AnswerTier = "fria"
	TierWarm AnswerTier = "morna"
	TierHot  AnswerTier = "quente"
)

// QualificationTemplate is a platform-wide rubric authored by an administrator.
// Companies never edit it directly; they materialize an independent copy.
type QualificationTemplate struct {
	ID          int64       `gorm:"primaryKey"`
	Name        string      `gorm:"not null"`
	SegmentType SegmentType `gorm:"not null;default:geral"`
	CreatedAt   int64       `gorm:"not null"`
	UpdatedAt   int64       `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Questions []*TemplateQuestion `gorm:"foreignKey:TemplateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type TemplateQuestion struct {
	ID         int64  `gorm:"primaryKey"`
	TemplateID int64  `gorm:"not null;index"` // References: qualification_templates(id)
	Text       string `gorm:"not null"`
	Weight     int    `gorm:"not null"` // always within [1,3], clamped at write time
	Position   int    `gorm:"not null"` // 1-based, dense per template

	// Relations
	Answers []*TemplateAnswer `gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type TemplateAnswer struct {
	ID         int64      `gorm:"primaryKey"`
	QuestionID int64      `gorm:"not null;index"` // References: template_questions(id)
	Tier       AnswerTier `gorm:"not null"`
	Text       string     `gorm:"not null"`

	// Points is weight * tier base points, computed once at write time and
	// stored so later base-table changes never rewrite history.
	Points int `gorm:"not null"`
}
