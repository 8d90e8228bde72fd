package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadqualify/internal/domain/entity"
)

type DefaultTemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *DefaultTemplateRepository {
	return &DefaultTemplateRepository{db: db}
}

func (d *DefaultTemplateRepository) FindAll() ([]*entity.QualificationTemplate, error) {
	var templates []*entity.QualificationTemplate
	err := d.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Questions.Answers").
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (d *DefaultTemplateRepository) FindByID(id int64) (*entity.QualificationTemplate, error) {
	var template entity.QualificationTemplate
	err := d.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Questions.Answers").
		First(&template, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (d *DefaultTemplateRepository) Create(template *entity.QualificationTemplate) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(template).Error
	})
}

// SaveHeader persists name/segment changes without touching the subtree.
func (d *DefaultTemplateRepository) SaveHeader(template *entity.QualificationTemplate) error {
	return d.db.Omit(clause.Associations).Save(template).Error
}

// ReplaceQuestions swaps the template's whole question/answer subtree for the
// one attached to the given entity, saving the header in the same transaction.
// Either everything lands or nothing does; a reader can never observe the
// transient empty state.
func (d *DefaultTemplateRepository) ReplaceQuestions(template *entity.QualificationTemplate) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(template).Error; err != nil {
			return err
		}

		owned := tx.Model(&entity.TemplateQuestion{}).
			Select("id").
			Where("template_id = ?", template.ID)
		if err := tx.Where("question_id IN (?)", owned).Delete(&entity.TemplateAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).Delete(&entity.TemplateQuestion{}).Error; err != nil {
			return err
		}

		for _, question := range template.Questions {
			question.TemplateID = template.ID
			if err := tx.Create(question).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the header and its children explicitly in one transaction.
// The sqlite driver does not enforce FK cascades by default, so nothing is
// left to the store's cascade behavior.
func (d *DefaultTemplateRepository) Delete(template *entity.QualificationTemplate) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&entity.TemplateQuestion{}).
			Select("id").
			Where("template_id = ?", template.ID)
		if err := tx.Where("question_id IN (?)", owned).Delete(&entity.TemplateAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).Delete(&entity.TemplateQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(template).Error
	})
}
