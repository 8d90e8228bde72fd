package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils/apierror"
)

type stubGate struct {
	lastCredential string
	user           *entity.User
	fail           apierror.ErrorResponse
}

func (s *stubGate) Authorize(credential string) (*entity.User, apierror.ErrorResponse) {
	s.lastCredential = credential
	if s.fail != nil {
		return nil, s.fail
	}
	return s.user, nil
}

type stubTemplateService struct {
	listCalls   int
	createCalls int
	updateID    int64
	deleteID    int64
}

func (s *stubTemplateService) List(actor *entity.User) ([]*contract.RubricResponse, apierror.ErrorResponse) {
	s.listCalls++
	return []*contract.RubricResponse{{ID: 1, Name: "Rubric"}}, nil
}

func (s *stubTemplateService) Create(actor *entity.User, req *contract.CreateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	s.createCalls++
	return &contract.RubricSummary{ID: 2, Name: req.Name}, nil
}

func (s *stubTemplateService) Update(actor *entity.User, templateID int64, req *contract.UpdateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse) {
	s.updateID = templateID
	return &contract.RubricSummary{ID: templateID}, nil
}

func (s *stubTemplateService) Delete(actor *entity.User, templateID int64) apierror.ErrorResponse {
	s.deleteID = templateID
	return nil
}

func dispatch(t *testing.T, route *DefaultTemplateRoute, body, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/qualification-templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	if err := route.Dispatch(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	return rec
}

func newRoute() (*DefaultTemplateRoute, *stubGate, *stubTemplateService) {
	gate := &stubGate{user: &entity.User{ID: 1, IsAdmin: true, Active: true}}
	svc := &stubTemplateService{}
	return NewTemplateDefault(svc, gate), gate, svc
}

func TestDispatchBodyTokenWins(t *testing.T) {
	route, gate, _ := newRoute()

	dispatch(t, route, `{"action":"list","token":"body-token"}`, "Bearer header-token")
	if gate.lastCredential != "body-token" {
		t.Errorf("got credential %q, want body token to win", gate.lastCredential)
	}
}

func TestDispatchFallsBackToHeader(t *testing.T) {
	route, gate, _ := newRoute()

	dispatch(t, route, `{"action":"list"}`, "Bearer header-token")
	if gate.lastCredential != "header-token" {
		t.Errorf("got credential %q, want %q", gate.lastCredential, "header-token")
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	route, _, svc := newRoute()

	rec := dispatch(t, route, `{"action":"explode","token":"t"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
	if svc.listCalls != 0 || svc.createCalls != 0 {
		t.Error("unknown action must not reach the service")
	}
}

func TestDispatchAuthFailureShortCircuits(t *testing.T) {
	route, gate, svc := newRoute()
	gate.fail = apierror.CredentialInvalidError

	rec := dispatch(t, route, `{"action":"list","token":"bad"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rec.Code)
	}
	if svc.listCalls != 0 {
		t.Error("failed authorization must not reach the service")
	}
}

func TestDispatchListResponse(t *testing.T) {
	route, _, svc := newRoute()

	rec := dispatch(t, route, `{"action":"list","token":"t"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if svc.listCalls != 1 {
		t.Errorf("got %d list calls, want 1", svc.listCalls)
	}
	if !strings.Contains(rec.Body.String(), `"templates"`) {
		t.Errorf("response must wrap templates, got %s", rec.Body.String())
	}
}

func TestDispatchUpdateRequiresID(t *testing.T) {
	route, _, svc := newRoute()

	rec := dispatch(t, route, `{"action":"update","token":"t","name":"X"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
	if svc.updateID != 0 {
		t.Error("update without id must not reach the service")
	}
}

func TestDispatchDelete(t *testing.T) {
	route, _, svc := newRoute()

	rec := dispatch(t, route, `{"action":"delete","token":"t","id":42}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if svc.deleteID != 42 {
		t.Errorf("got delete id %d, want 42", svc.deleteID)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("delete must report success, got %s", rec.Body.String())
	}
}
