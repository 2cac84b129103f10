package http

import (
	"net/http"

	appuc "loanledger/internal/usecase/application"
	judgmentuc "loanledger/internal/usecase/judgment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct {
	apps      *appuc.Usecase
	judgments *judgmentuc.Usecase
}

func NewApplicationHandler(apps *appuc.Usecase, judgments *judgmentuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, judgments: judgments}
}

type createApplicationReq struct {
	Name            string   `json:"name"             validate:"required"`
	Phone           string   `json:"phone"            validate:"required"`
	Email           string   `json:"email"            validate:"required,email"`
	RequestedAmount float64  `json:"requested_amount" validate:"required,gt=0,dec2"`
	InterestRate    *float64 `json:"interest_rate"    validate:"omitempty,gte=0"`
	Fee             *float64 `json:"fee"              validate:"omitempty,gte=0,dec2"`
	MaturityMonths  *int     `json:"maturity_months"  validate:"omitempty,gt=0"`
}

func (h *ApplicationHandler) CreateApplication(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.apps.Create(c.Request().Context(), appuc.CreateApplicationInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		RequestedAmount: decimal.NewFromFloat(req.RequestedAmount),
		InterestRate:    req.InterestRate,
		Fee:             req.Fee,
		MaturityMonths:  req.MaturityMonths,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.apps.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type createJudgmentReq struct {
	Name           string  `json:"name"            validate:"required"`
	ApprovalAmount float64 `json:"approval_amount" validate:"gte=0,dec2"`
	ApprovalRate   float64 `json:"approval_rate"   validate:"gte=0"`
	Reason         string  `json:"reason"`
}

func (h *ApplicationHandler) CreateJudgment(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req createJudgmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.judgments.Create(c.Request().Context(), judgmentuc.CreateJudgmentInput{
		ApplicationID:  appID,
		Name:           req.Name,
		ApprovalAmount: decimal.NewFromFloat(req.ApprovalAmount),
		ApprovalRate:   req.ApprovalRate,
		Reason:         req.Reason,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetJudgment(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.judgments.GetByApplication(c.Request().Context(), appID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
