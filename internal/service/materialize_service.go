package service

import (
	"sort"

	"github.com/labstack/gommon/log"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils/apierror"
)

// MaterializeService clones an administrator template into a brand-new,
// independently editable company rubric. The clone is a snapshot: no record
// links it back to the template, and later template edits never reach it.
type MaterializeService struct {
	TemplateRepo TemplateRepository
	Company      *CompanyQualificationService
}

func NewMaterializeService(templateRepo TemplateRepository, company *CompanyQualificationService) *MaterializeService {
	return &MaterializeService{
		TemplateRepo: templateRepo,
		Company:      company,
	}
}

// Materialize reshapes the template subtree into the company create input and
// reuses the company create path verbatim, which recomputes point values from
// the same scoring rule. It never merges with rubrics the tenant already has;
// duplicates are allowed.
func (m *MaterializeService) Materialize(actor *entity.User, templateID int64) (*contract.RubricSummary, apierror.ErrorResponse) {
	if actor.CompanyID == 0 {
		return nil, apierror.NoCompanyMembershipError
	}

	template, err := m.TemplateRepo.FindByID(templateID)
	if err != nil {
		log.Errorf("failed to fetch template %d for materialization: %v", templateID, err)
		return nil, apierror.InternalServerError
	}

	if template == nil {
		return nil, apierror.NotFoundError
	}

	req := &contract.CreateRubricRequest{
		Name:        template.Name,
		SegmentType: string(template.SegmentType),
		Questions:   questionInputsFromTemplate(template),
	}
	return m.Company.Create(actor, req)
}

func questionInputsFromTemplate(template *entity.QualificationTemplate) []contract.QuestionInput {
	questions := make([]*entity.TemplateQuestion, len(template.Questions))
	copy(questions, template.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Position < questions[j].Position
	})

	inputs := make([]contract.QuestionInput, 0, len(questions))
	for _, q := range questions {
		in := contract.QuestionInput{
			Pergunta: q.Text,
			Peso:     q.Weight,
		}
		for _, a := range q.Answers {
			switch a.Tier {
			case entity.TierCold:
				in.RespostaFria = a.Text
			case entity.TierWarm:
				in.RespostaMorna = a.Text
			case entity.TierHot:
				in.RespostaQuente = a.Text
			}
		}
		inputs = append(inputs, in)
	}
	return inputs
}
