package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/apierror"
)

type TemplateService interface {
	List(actor *entity.User) ([]*contract.RubricResponse, apierror.ErrorResponse)
	Create(actor *entity.User, req *contract.CreateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse)
	Update(actor *entity.User, templateID int64, req *contract.UpdateRubricRequest) (*contract.RubricSummary, apierror.ErrorResponse)
	Delete(actor *entity.User, templateID int64) apierror.ErrorResponse
}

type IdentityGate interface {
	Authorize(credential string) (*entity.User, apierror.ErrorResponse)
}

type DefaultTemplateRoute struct {
	TemplateService TemplateService
	Gate            IdentityGate
}

func NewTemplateDefault(templateService TemplateService, gate IdentityGate) *DefaultTemplateRoute {
	return &DefaultTemplateRoute{
		TemplateService: templateService,
		Gate:            gate,
	}
}

// Dispatch handles the single-POST template endpoint. The action field picks
// the operation; every case is covered explicitly and anything else is a 400.
// Concurrent updates on the same template are last-writer-wins.
func (t *DefaultTemplateRoute) Dispatch(c echo.Context) error {
	var req contract.RubricActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	actor, aerr := t.Gate.Authorize(resolveCredential(c, req.Token))
	if aerr != nil {
		return c.JSON(aerr.Code(), aerr)
	}

	switch req.Action {
	case contract.ActionList:
		templates, serr := t.TemplateService.List(actor)
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"templates": templates})

	case contract.ActionCreate:
		summary, serr := t.TemplateService.Create(actor, createRequestFrom(&req))
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "template": summary})

	case contract.ActionUpdate:
		if req.ID <= 0 {
			return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
		}
		summary, serr := t.TemplateService.Update(actor, req.ID, updateRequestFrom(&req))
		if serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "template": summary})

	case contract.ActionDelete:
		if req.ID <= 0 {
			return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
		}
		if serr := t.TemplateService.Delete(actor, req.ID); serr != nil {
			return c.JSON(serr.Code(), serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})

	default:
		return c.JSON(http.StatusBadRequest, apierror.NewUnknownActionError(string(req.Action)))
	}
}

// resolveCredential prefers the body-embedded token over the Authorization
// header: some forwarding environments only relay the body channel reliably.
func resolveCredential(c echo.Context, bodyToken string) string {
	if tok := strings.TrimSpace(bodyToken); tok != "" {
		return tok
	}
	return utils.BearerFromHeader(c)
}

func createRequestFrom(req *contract.RubricActionRequest) *contract.CreateRubricRequest {
	create := &contract.CreateRubricRequest{
		Questions: req.Questions,
	}
	if req.Name != nil {
		create.Name = *req.Name
	}
	if req.SegmentType != nil {
		create.SegmentType = *req.SegmentType
	}
	return create
}

func updateRequestFrom(req *contract.RubricActionRequest) *contract.UpdateRubricRequest {
	return &contract.UpdateRubricRequest{
		Name:        req.Name,
		SegmentType: req.SegmentType,
		Questions:   req.Questions,
	}
}
