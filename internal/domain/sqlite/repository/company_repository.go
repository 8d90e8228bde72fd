package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadqualify/internal/domain/entity"
)

// DefaultCompanyQualificationRepository is the tenant-scoped twin of the
// template repository: every read is keyed by company id, so a tenant can
// never reach another tenant's rows.
type DefaultCompanyQualificationRepository struct {
	db *gorm.DB
}

func NewCompanyQualificationRepository(db *gorm.DB) *DefaultCompanyQualificationRepository {
	return &DefaultCompanyQualificationRepository{db: db}
}

func (d *DefaultCompanyQualificationRepository) FindAllByCompany(companyID int64) ([]*entity.CompanyQualification, error) {
	var qualifications []*entity.CompanyQualification
	err := d.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Questions.Answers").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&qualifications).Error
	if err != nil {
		return nil, err
	}
	return qualifications, nil
}

func (d *DefaultCompanyQualificationRepository) FindByID(id, companyID int64) (*entity.CompanyQualification, error) {
	var qualification entity.CompanyQualification
	err := d.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Questions.Answers").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&qualification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &qualification, nil
}

func (d *DefaultCompanyQualificationRepository) Create(qualification *entity.CompanyQualification) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(qualification).Error
	})
}

func (d *DefaultCompanyQualificationRepository) SaveHeader(qualification *entity.CompanyQualification) error {
	return d.db.Omit(clause.Associations).Save(qualification).Error
}

func (d *DefaultCompanyQualificationRepository) ReplaceQuestions(qualification *entity.CompanyQualification) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(qualification).Error; err != nil {
			return err
		}

		owned := tx.Model(&entity.CompanyQuestion{}).
			Select("id").
			Where("qualification_id = ?", qualification.ID)
		if err := tx.Where("question_id IN (?)", owned).Delete(&entity.CompanyAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("qualification_id = ?", qualification.ID).Delete(&entity.CompanyQuestion{}).Error; err != nil {
			return err
		}

		for _, question := range qualification.Questions {
			question.QualificationID = qualification.ID
			if err := tx.Create(question).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *DefaultCompanyQualificationRepository) Delete(qualification *entity.CompanyQualification) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&entity.CompanyQuestion{}).
			Select("id").
			Where("qualification_id = ?", qualification.ID)
		if err := tx.Where("question_id IN (?)", owned).Delete(&entity.CompanyAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("qualification_id = ?", qualification.ID).Delete(&entity.CompanyQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(qualification).Error
	})
}
