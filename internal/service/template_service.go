package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/domain/scoring"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/apierror"
	"leadqualify/internal/utils/uid"
)

type TemplateRepository interface {
	FindAll() ([]*entity.QualificationTemplate, error)
	FindByID(id int64) (*entity.QualificationTemplate, error)
	Create(template *entity.QualificationTemplate) error
	SaveHeader(template *entity.QualificationTemplate) error
	ReplaceQuestions(template *entity.QualificationTemplate) error
	Delete(template *entity.QualificationTemplate) error
}

// TemplateService owns the administrator-authored rubric templates. Writes
// require the admin role flag; reads only require a resolved identity, since
// tenants browse templates before materializing one.
type TemplateService struct {
	TemplateRepo TemplateRepository
	Validate     *validator.Validate
}

func NewTemplateService(templateRepo TemplateRepository, validate *validator.Validate) *TemplateService {
	return &TemplateService{
		TemplateRepo: templateRepo,
		Validate:     validate,
	}
}

func (t *TemplateService) List(actor *entity.User) ([]*contract.RubricResponse, apierror.ErrorResponse) {
	templates, err := t.TemplateRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch templates: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.RubricResponse, len(templates))
	for i, template := range templates {
		resp[i] = toTemplateResponse(template)
	}
	return resp, nil
}

func (t *TemplateService) Create(actor *entity.User, req *contract.CreateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	if !actor.IsAdmin {
		return nil, apierror.NotAuthorizedError
	}

	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	template := &entity.QualificationTemplate{
		ID:          uid.Generate(),
		Name:        req.Name,
		SegmentType: normalizeSegment(req.SegmentType),
		CreatedAt:   now,
		UpdatedAt:   now,
		Questions:   buildTemplateQuestions(req.Questions),
	}

	if err := t.TemplateRepo.Create(template); err != nil {
		log.Errorf("failed to create template: %v", err)
		return nil, apierror.InternalServerError
	}
	return toTemplateSummary(template), nil
}

// Update applies header changes and, when a questions array was supplied,
// swaps the whole question/answer subtree for a freshly built one. The swap
// runs in one store transaction, so a failed update never half-applies.
func (t *TemplateService) Update(actor *entity.User, templateID int64, req *contract.UpdateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	if !actor.IsAdmin {
		return nil, apierror.NotAuthorizedError
	}

	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	template, err := t.TemplateRepo.FindByID(templateID)
	if err != nil {
		log.Errorf("failed to fetch template: %v", err)
		return nil, apierror.InternalServerError
	}

	if template == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, blankNameError()
		}
		template.Name = name
	}
	if req.SegmentType != nil {
		template.SegmentType = normalizeSegment(*req.SegmentType)
	}
	template.UpdatedAt = utils.NowUTC()

	if req.Questions == nil {
		// Rename-only update, subtree untouched
		if err = t.TemplateRepo.SaveHeader(template); err != nil {
			log.Errorf("failed to update template header: %v", err)
			return nil, apierror.InternalServerError
		}
		return toTemplateSummary(template), nil
	}

	template.Questions = buildTemplateQuestions(req.Questions)
	if err = t.TemplateRepo.ReplaceQuestions(template); err != nil {
		log.Errorf("failed to replace template questions: %v", err)
		return nil, apierror.InternalServerError
	}
	return toTemplateSummary(template), nil
}

func (t *TemplateService) Delete(actor *entity.User, templateID int64) apierror.ErrorResponse {
	if !actor.IsAdmin {
		return apierror.NotAuthorizedError
	}

	template, err := t.TemplateRepo.FindByID(templateID)
	if err != nil {
		log.Errorf("failed to fetch template: %v", err)
		return apierror.InternalServerError
	}

	if template == nil {
		return apierror.NotFoundError
	}

	if err = t.TemplateRepo.Delete(template); err != nil {
		log.Errorf("failed to delete template: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// buildTemplateQuestions turns the submitted array into the entity subtree.
// Position is the 1-based index among the kept questions, so it stays dense
// even when blank questions are dropped. Point values are computed here, at
// write time, and stored on each answer.
func buildTemplateQuestions(inputs []contract.QuestionInput) []*entity.TemplateQuestion {
	questions := make([]*entity.TemplateQuestion, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		text := strings.TrimSpace(in.Pergunta)
		if text == "" {
			continue
		}

		weight := scoring.ClampWeight(in.Peso)
		question := &entity.TemplateQuestion{
			ID:       uid.Generate(),
			Text:     text,
			Weight:   weight,
			Position: len(questions) + 1,
		}

		for _, tt := range tierTexts(in) {
			if tt.text == "" {
				continue
			}
			question.Answers = append(question.Answers, &entity.TemplateAnswer{
				ID:     uid.Generate(),
				Tier:   tt.tier,
				Text:   tt.text,
				Points: scoring.PointValue(weight, tt.tier),
			})
		}
		questions = append(questions, question)
	}
	return questions
}

func toTemplateSummary(template *entity.QualificationTemplate) *contract.RubricSummary {
	return &contract.RubricSummary{
		ID:          template.ID,
		Name:        template.Name,
		SegmentType: string(template.SegmentType),
		CreatedAt:   utils.FormatEpoch(template.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(template.UpdatedAt),
	}
}

func toTemplateResponse(template *entity.QualificationTemplate) *contract.RubricResponse {
	questions := make([]*contract.QuestionResponse, len(template.Questions))
	for i, q := range template.Questions {
		resp := &contract.QuestionResponse{
			ID:       q.ID,
			Pergunta: q.Text,
			Peso:     q.Weight,
			Ordem:    q.Position,
		}
		for _, a := range q.Answers {
			applyAnswer(resp, a.Tier, a.Text, a.Points)
		}
		questions[i] = resp
	}
	sortQuestionResponses(questions)

	return &contract.RubricResponse{
		ID:          template.ID,
		Name:        template.Name,
		SegmentType: string(template.SegmentType),
		Perguntas:   questions,
		CreatedAt:   utils.FormatEpoch(template.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(template.UpdatedAt),
	}
}
