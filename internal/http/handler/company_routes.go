package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils/apierror"
)

type CompanyQualificationService interface {
	List(actor *entity.User) ([]*contract.RubricResponse, apierror.ErrorResponse)
	Create(actor *entity.User, req *contract.CreateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse)
	Update(actor *entity.User, qualificationID int64, req *contract.UpdateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse)
	Delete(actor *entity.User, qualificationID int64) apierror.ErrorResponse
}

type MaterializeService interface {
	Materialize(actor *entity.User, templateID int64) (*contract.RubricSummary, apierror.ErrorResponse)
}

type DefaultCompanyRoute struct {
	QualificationService CompanyQualificationService
	Materializer         MaterializeService
	Gate                 IdentityGate
}

func NewCompanyDefault(qualificationService CompanyQualificationService, materializer MaterializeService, gate IdentityGate) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{
		QualificationService: qualificationService,
		Materializer:         materializer,
		Gate:                 gate,
	}
}

// Dispatch mirrors the template endpoint for the caller's own company rubric,
// plus the extra materialize action that snapshots a template into a new
// company rubric.
func (h *DefaultCompanyRoute) Dispatch(c echo.Context) error {
	var req contract.RubricActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	actor, aerr := h.Gate.Authorize(resolveCredential(c, req.Token))
	if aerr != nil {
		return c.JSON(aerr.Code(), aerr)
	}

	switch req.Action {
	case contract.ActionList:
		qualifications, serr := h.QualificationService.List(actor)
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"qualifications": qualifications})

	case contract.ActionCreate:
		summary, serr := h.QualificationService.Create(actor, createRequestFrom(&req))
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "qualification": summary})

	case contract.ActionUpdate:
		if req.ID <= 0 {
			return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
		}
		summary, serr := h.QualificationService.Update(actor, req.ID, updateRequestFrom(&req))
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "qualification": summary})

	case contract.ActionDelete:
		if req.ID <= 0 {
			return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
		}
		if serr := h.QualificationService.Delete(actor, req.ID); serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})

	case contract.ActionMaterialize:
		return h.materialize(c, actor, req.TemplateID)

	default:
		return c.JSON(http.StatusBadRequest, apierror.NewUnknownActionError(string(req.Action)))
	}
}

// Materialize is the standalone route for cloning a template; it accepts the
// same body-or-header credential as the dispatch endpoint.
func (h *DefaultCompanyRoute) Materialize(c echo.Context) error {
	var req contract.MaterializeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	actor, aerr := h.Gate.Authorize(resolveCredential(c, req.Token))
	if aerr != nil {
		return c.JSON(aerr.Code(), aerr)
	}
	return h.materialize(c, actor, req.TemplateID)
}

func (h *DefaultCompanyRoute) materialize(c echo.Context, actor *entity.User, templateID int64) error {
	if templateID <= 0 {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	summary, serr := h.Materializer.Materialize(actor, templateID)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "qualification": summary})
}
