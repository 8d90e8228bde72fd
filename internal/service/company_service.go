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

type CompanyQualificationRepository interface {
	FindAllByCompany(companyID int64) ([]*entity.CompanyQualification, error)
	FindByID(id, companyID int64) (*entity.CompanyQualification, error)
	Create(qualification *entity.CompanyQualification) error
	SaveHeader(qualification *entity.CompanyQualification) error
	ReplaceQuestions(qualification *entity.CompanyQualification) error
	Delete(qualification *entity.CompanyQualification) error
}

// CompanyQualificationService is the tenant-side twin of TemplateService:
// same four operations and the same replace-all-children update, scoped by
// the caller's company instead of gated on the admin flag.
type CompanyQualificationService struct {
	QualificationRepo CompanyQualificationRepository
	Validate          *validator.Validate
}

func NewCompanyQualificationService(qualificationRepo CompanyQualificationRepository, validate *validator.Validate) *CompanyQualificationService {
	return &CompanyQualificationService{
		QualificationRepo: qualificationRepo,
		Validate:          validate,
	}
}

func (s *CompanyQualificationService) List(actor *entity.User) ([]*contract.RubricResponse, apierror.ErrorResponse) {
	if actor.CompanyID == 0 {
		return nil, apierror.NoCompanyMembershipError
	}

	qualifications, err := s.QualificationRepo.FindAllByCompany(actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company qualifications: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.RubricResponse, len(qualifications))
	for i, qualification := range qualifications {
		resp[i] = toQualificationResponse(qualification)
	}
	return resp, nil
}

func (s *CompanyQualificationService) Create(actor *entity.User, req *contract.CreateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	if actor.CompanyID == 0 {
		return nil, apierror.NoCompanyMembershipError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	qualification := &entity.CompanyQualification{
		ID:          uid.Generate(),
		CompanyID:   actor.CompanyID,
		Name:        req.Name,
		SegmentType: normalizeSegment(req.SegmentType),
		CreatedAt:   now,
		UpdatedAt:   now,
		Questions:   buildCompanyQuestions(req.Questions),
	}

	if err := s.QualificationRepo.Create(qualification); err != nil {
		log.Errorf("failed to create company qualification: %v", err)
		return nil, apierror.InternalServerError
	}
	return toQualificationSummary(qualification), nil
}

func (s *CompanyQualificationService) Update(actor *entity.User, qualificationID int64, req *contract.UpdateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	if actor.CompanyID == 0 {
		return nil, apierror.NoCompanyMembershipError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	qualification, err := s.QualificationRepo.FindByID(qualificationID, actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company qualification: %v", err)
		return nil, apierror.InternalServerError
	}

	if qualification == nil {
		// Unknown id, or a rubric owned by another tenant; indistinguishable
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, blankNameError()
		}
		qualification.Name = name
	}
	if req.SegmentType != nil {
		qualification.SegmentType = normalizeSegment(*req.SegmentType)
	}
	qualification.UpdatedAt = utils.NowUTC()

	if req.Questions == nil {
		if err = s.QualificationRepo.SaveHeader(qualification); err != nil {
			log.Errorf("failed to update company qualification header: %v", err)
			return nil, apierror.InternalServerError
		}
		return toQualificationSummary(qualification), nil
	}

	qualification.Questions = buildCompanyQuestions(req.Questions)
	if err = s.QualificationRepo.ReplaceQuestions(qualification); err != nil {
		log.Errorf("failed to replace company qualification questions: %v", err)
		return nil, apierror.InternalServerError
	}
	return toQualificationSummary(qualification), nil
}

func (s *CompanyQualificationService) Delete(actor *entity.User, qualificationID int64) apierror.ErrorResponse {
	if actor.CompanyID == 0 {
		return apierror.NoCompanyMembershipError
	}

	qualification, err := s.QualificationRepo.FindByID(qualificationID, actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company qualification: %v", err)
		return apierror.InternalServerError
	}

	if qualification == nil {
		return apierror.NotFoundError
	}

	if err = s.QualificationRepo.Delete(qualification); err != nil {
		log.Errorf("failed to delete company qualification: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func buildCompanyQuestions(inputs []contract.QuestionInput) []*entity.CompanyQuestion {
	questions := make([]*entity.CompanyQuestion, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		text := strings.TrimSpace(in.Pergunta)
		if text == "" {
			continue
		}

		weight := scoring.ClampWeight(in.Peso)
		question := &entity.CompanyQuestion{
			ID:       uid.Generate(),
			Text:     text,
			Weight:   weight,
			Position: len(questions) + 1,
		}

		for _, tt := range tierTexts(in) {
			if tt.text == "" {
				continue
			}
			question.Answers = append(question.Answers, &entity.CompanyAnswer{
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

func toQualificationSummary(qualification *entity.CompanyQualification) *contract.RubricSummary {
	return &contract.RubricSummary{
		ID:          qualification.ID,
		Name:        qualification.Name,
		SegmentType: string(qualification.SegmentType),
		CreatedAt:   utils.FormatEpoch(qualification.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(qualification.UpdatedAt),
	}
}

func toQualificationResponse(qualification *entity.CompanyQualification) *contract.RubricResponse {
	questions := make([]*contract.QuestionResponse, len(qualification.Questions))
	for i, q := range qualification.Questions {
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
		ID:          qualification.ID,
		Name:        qualification.Name,
		SegmentType: string(qualification.SegmentType),
		CompanyID:   qualification.CompanyID,
		Perguntas:   questions,
		CreatedAt:   utils.FormatEpoch(qualification.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(qualification.UpdatedAt),
	}
}
