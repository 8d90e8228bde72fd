package service

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
)

type stubCompanyRepo struct {
	qualifications map[int64]*entity.CompanyQualification
	order          []int64

	creates  int
	replaces int
	deletes  int

	err error
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{qualifications: map[int64]*entity.CompanyQualification{}}
}

func (s *stubCompanyRepo) FindAllByCompany(companyID int64) ([]*entity.CompanyQualification, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.CompanyQualification
	for i := len(s.order) - 1; i >= 0; i-- {
		q := s.qualifications[s.order[i]]
		if q.CompanyID == companyID {
			out = append(out, copyQualification(q))
		}
	}
	return out, nil
}

func (s *stubCompanyRepo) FindByID(id, companyID int64) (*entity.CompanyQualification, error) {
	if s.err != nil {
		return nil, s.err
	}
	q, ok := s.qualifications[id]
	if !ok || q.CompanyID != companyID {
		return nil, nil
	}
	return copyQualification(q), nil
}

func (s *stubCompanyRepo) Create(q *entity.CompanyQualification) error {
	if s.err != nil {
		return s.err
	}
	s.creates++
	s.qualifications[q.ID] = copyQualification(q)
	s.order = append(s.order, q.ID)
	return nil
}

func (s *stubCompanyRepo) SaveHeader(q *entity.CompanyQualification) error {
	if s.err != nil {
		return s.err
	}
	stored, ok := s.qualifications[q.ID]
	if !ok {
		return nil
	}
	stored.Name = q.Name
	stored.SegmentType = q.SegmentType
	stored.UpdatedAt = q.UpdatedAt
	return nil
}

func (s *stubCompanyRepo) ReplaceQuestions(q *entity.CompanyQualification) error {
	if s.err != nil {
		return s.err
	}
	s.replaces++
	s.qualifications[q.ID] = copyQualification(q)
	return nil
}

func (s *stubCompanyRepo) Delete(q *entity.CompanyQualification) error {
	if s.err != nil {
		return s.err
	}
	s.deletes++
	delete(s.qualifications, q.ID)
	for i, id := range s.order {
		if id == q.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyQualification(q *entity.CompanyQualification) *entity.CompanyQualification {
	cp := *q
	cp.Questions = make([]*entity.CompanyQuestion, len(q.Questions))
	for i, question := range q.Questions {
		qc := *question
		qc.Answers = make([]*entity.CompanyAnswer, len(question.Answers))
		for j, a := range question.Answers {
			ac := *a
			qc.Answers[j] = &ac
		}
		cp.Questions[i] = &qc
	}
	return &cp
}

func newCompanyService(repo CompanyQualificationRepository) *CompanyQualificationService {
	return NewCompanyQualificationService(repo, validator.New())
}

func TestCompanyOperationsRequireMembership(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)
	orphan := &entity.User{ID: 30, Active: true} // no company

	if _, serr := svc.List(orphan); serr == nil || serr.Code() != 403 {
		t.Fatalf("List without company: got %v, want 403", serr)
	}
	if _, serr := svc.Create(orphan, &contract.CreateRubricRequest{Name: "X"}); serr == nil || serr.Code() != 403 {
		t.Fatalf("Create without company: got %v, want 403", serr)
	}
	if repo.creates != 0 {
		t.Error("membershipless create must not persist")
	}
}

func TestCompanyCreateScopesRows(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)

	summary, serr := svc.Create(memberUser(7), &contract.CreateRubricRequest{
		Name: "Mine",
		Questions: []contract.QuestionInput{
			{Pergunta: "Q?", Peso: 2, RespostaQuente: "hot"},
		},
	})
	if serr != nil {
		t.Fatalf("Create failed: %v", serr)
	}

	if got := repo.qualifications[summary.ID].CompanyID; got != 7 {
		t.Errorf("got company id %d, want 7", got)
	}
	if got := repo.qualifications[summary.ID].Questions[0].Answers[0].Points; got != 20 {
		t.Errorf("got %d points, want 20", got)
	}
}

func TestCompanyListOnlyOwnRubrics(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)

	if _, serr := svc.Create(memberUser(1), &contract.CreateRubricRequest{Name: "Company 1"}); serr != nil {
		t.Fatalf("Create failed: %v", serr)
	}
	if _, serr := svc.Create(memberUser(2), &contract.CreateRubricRequest{Name: "Company 2"}); serr != nil {
		t.Fatalf("Create failed: %v", serr)
	}

	listed, serr := svc.List(memberUser(1))
	if serr != nil {
		t.Fatalf("List failed: %v", serr)
	}
	if len(listed) != 1 || listed[0].Name != "Company 1" {
		t.Errorf("tenant must only see its own rubrics, got %+v", listed)
	}
}

func TestCompanyUpdateHiddenAcrossTenants(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)

	summary, _ := svc.Create(memberUser(1), &contract.CreateRubricRequest{
		Name: "Private",
		Questions: []contract.QuestionInput{
			{Pergunta: "Q?", Peso: 1, RespostaFria: "f"},
		},
	})

	intruder := memberUser(2)
	if _, serr := svc.Update(intruder, summary.ID, &contract.UpdateRubricRequest{Questions: []contract.QuestionInput{}}); serr == nil || serr.Code() != 404 {
		t.Fatalf("cross-tenant update: got %v, want 404", serr)
	}
	if serr := svc.Delete(intruder, summary.ID); serr == nil || serr.Code() != 404 {
		t.Fatalf("cross-tenant delete: got %v, want 404", serr)
	}

	stored := repo.qualifications[summary.ID]
	if stored == nil || len(stored.Questions) != 1 {
		t.Error("cross-tenant calls must not change the owner's rubric")
	}
}

func TestCompanyUpdateReplacesQuestions(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)
	owner := memberUser(3)

	summary, _ := svc.Create(owner, &contract.CreateRubricRequest{
		Name: "Mutable",
		Questions: []contract.QuestionInput{
			{Pergunta: "Old?", Peso: 1, RespostaFria: "f"},
		},
	})

	_, serr := svc.Update(owner, summary.ID, &contract.UpdateRubricRequest{
		Questions: []contract.QuestionInput{
			{Pergunta: "New?", Peso: 3, RespostaQuente: "h"},
		},
	})
	if serr != nil {
		t.Fatalf("Update failed: %v", serr)
	}

	stored := repo.qualifications[summary.ID]
	if len(stored.Questions) != 1 || stored.Questions[0].Text != "New?" {
		t.Errorf("question set not replaced, got %+v", stored.Questions)
	}
	if stored.Questions[0].Answers[0].Points != 30 {
		t.Errorf("got %d points, want 30", stored.Questions[0].Answers[0].Points)
	}
}

func TestCompanyEmptyRubricIsValid(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := newCompanyService(repo)

	summary, serr := svc.Create(memberUser(4), &contract.CreateRubricRequest{Name: "Empty"})
	if serr != nil {
		t.Fatalf("Create failed: %v", serr)
	}
	if len(repo.qualifications[summary.ID].Questions) != 0 {
		t.Error("empty rubric must save with zero questions")
	}
}
