package service

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
)

func newMaterializeFixture() (*stubTemplateRepo, *stubCompanyRepo, *TemplateService, *MaterializeService) {
	templateRepo := newStubTemplateRepo()
	companyRepo := newStubCompanyRepo()
	validate := validator.New()

	templateSvc := NewTemplateService(templateRepo, validate)
	companySvc := NewCompanyQualificationService(companyRepo, validate)
	return templateRepo, companyRepo, templateSvc, NewMaterializeService(templateRepo, companySvc)
}

func TestMaterializeUnknownTemplate(t *testing.T) {
	_, _, _, svc := newMaterializeFixture()

	if _, serr := svc.Materialize(memberUser(1), 404404); serr == nil || serr.Code() != 404 {
		t.Fatalf("got %v, want 404", serr)
	}
}

func TestMaterializeRequiresMembership(t *testing.T) {
	_, _, _, svc := newMaterializeFixture()
	orphan := &entity.User{ID: 40, Active: true}

	if _, serr := svc.Materialize(orphan, 1); serr == nil || serr.Code() != 403 {
		t.Fatalf("got %v, want 403", serr)
	}
}

func TestMaterializeCopiesSubtree(t *testing.T) {
	_, companyRepo, templateSvc, svc := newMaterializeFixture()

	summary, serr := templateSvc.Create(adminUser(), &contract.CreateRubricRequest{
		Name:        "Consorcio base",
		SegmentType: "consorcio",
		Questions: []contract.QuestionInput{
			{Pergunta: "Budget?", Peso: 3, RespostaFria: "none", RespostaMorna: "some", RespostaQuente: "plenty"},
			{Pergunta: "Timeline?", Peso: 1, RespostaQuente: "now"},
		},
	})
	if serr != nil {
		t.Fatalf("template create failed: %v", serr)
	}

	copySummary, serr := svc.Materialize(memberUser(9), summary.ID)
	if serr != nil {
		t.Fatalf("Materialize failed: %v", serr)
	}

	stored := companyRepo.qualifications[copySummary.ID]
	if stored.CompanyID != 9 {
		t.Errorf("got company id %d, want 9", stored.CompanyID)
	}
	if stored.Name != "Consorcio base" || stored.SegmentType != entity.SegmentConsortium {
		t.Errorf("header not copied: %q / %q", stored.Name, stored.SegmentType)
	}
	if len(stored.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(stored.Questions))
	}

	first := stored.Questions[0]
	if first.Text != "Budget?" || first.Weight != 3 || first.Position != 1 {
		t.Errorf("first question mismatch: %+v", first)
	}
	wantPoints := map[entity.AnswerTier]int{entity.TierCold: 3, entity.TierWarm: 15, entity.TierHot: 30}
	for _, a := range first.Answers {
		if a.Points != wantPoints[a.Tier] {
			t.Errorf("tier %s: got %d points, want %d", a.Tier, a.Points, wantPoints[a.Tier])
		}
	}

	second := stored.Questions[1]
	if second.Position != 2 || len(second.Answers) != 1 || second.Answers[0].Points != 10 {
		t.Errorf("second question mismatch: %+v", second)
	}
}

func TestMaterializedCopyIsIndependent(t *testing.T) {
	_, companyRepo, templateSvc, svc := newMaterializeFixture()

	summary, _ := templateSvc.Create(adminUser(), &contract.CreateRubricRequest{
		Name: "Original",
		Questions: []contract.QuestionInput{
			{Pergunta: "Frozen?", Peso: 2, RespostaFria: "yes"},
		},
	})

	copySummary, serr := svc.Materialize(memberUser(5), summary.ID)
	if serr != nil {
		t.Fatalf("Materialize failed: %v", serr)
	}
	before := copyQualification(companyRepo.qualifications[copySummary.ID])

	// Rewrite the template completely after the snapshot was taken
	name := "Rewritten"
	_, serr = templateSvc.Update(adminUser(), summary.ID, &contract.UpdateRubricRequest{
		Name: &name,
		Questions: []contract.QuestionInput{
			{Pergunta: "Changed?", Peso: 3, RespostaQuente: "no"},
		},
	})
	if serr != nil {
		t.Fatalf("template update failed: %v", serr)
	}

	after := companyRepo.qualifications[copySummary.ID]
	if after.Name != before.Name {
		t.Errorf("copy name changed: %q -> %q", before.Name, after.Name)
	}
	if len(after.Questions) != len(before.Questions) {
		t.Fatalf("copy question count changed: %d -> %d", len(before.Questions), len(after.Questions))
	}
	for i, q := range after.Questions {
		bq := before.Questions[i]
		if q.Text != bq.Text || q.Weight != bq.Weight || q.Position != bq.Position {
			t.Errorf("copy question %d changed: %+v -> %+v", i, bq, q)
		}
	}
}

func TestMaterializeAllowsDuplicates(t *testing.T) {
	_, companyRepo, templateSvc, svc := newMaterializeFixture()

	summary, _ := templateSvc.Create(adminUser(), &contract.CreateRubricRequest{Name: "Twice"})

	member := memberUser(6)
	first, serr := svc.Materialize(member, summary.ID)
	if serr != nil {
		t.Fatalf("first materialize failed: %v", serr)
	}
	second, serr := svc.Materialize(member, summary.ID)
	if serr != nil {
		t.Fatalf("second materialize failed: %v", serr)
	}

	if first.ID == second.ID {
		t.Error("each materialization must create an independent rubric")
	}
	if len(companyRepo.qualifications) != 2 {
		t.Errorf("got %d rubrics, want 2", len(companyRepo.qualifications))
	}
}
