package http

import (
	"net/http"
	"time"

	contractDomain "loanledger/internal/domain/contract"
	contractuc "loanledger/internal/usecase/contract"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ContractHandler struct{ uc *contractuc.Usecase }

func NewContractHandler(uc *contractuc.Usecase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

type createContractReq struct {
	JudgmentID uint64  `json:"judgment_id" validate:"required,gt=0"`
	Amount     float64 `json:"amount"      validate:"required,gt=0,dec2"`
	Rate       float64 `json:"rate"        validate:"gte=0"`
	TermMonths int     `json:"term_months" validate:"required,gt=0"`
}

func (h *ContractHandler) CreateContract(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req createContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), contractuc.CreateContractInput{
		ApplicationID: appID,
		JudgmentID:    req.JudgmentID,
		Amount:        decimal.NewFromFloat(req.Amount),
		Rate:          req.Rate,
		TermMonths:    req.TermMonths,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ContractApplication marks the application contracted from its approved
// judgment without touching any contract record.
func (h *ContractHandler) ContractApplication(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.uc.ContractApplication(c.Request().Context(), appID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateContractStatusReq struct {
	Status      string     `json:"status" validate:"required,oneof=pending signed active completed cancelled"`
	SignedAt    *time.Time `json:"signed_at"`
	ActivatedAt *time.Time `json:"activated_at"`
}

func (h *ContractHandler) UpdateContractStatus(c echo.Context) error {
	contractID, err := pathID(c, "contract_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req updateContractStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), contractuc.UpdateStatusInput{
		ContractID:  contractID,
		Status:      contractDomain.Status(req.Status),
		SignedAt:    req.SignedAt,
		ActivatedAt: req.ActivatedAt,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) GetContract(c echo.Context) error {
	contractID, err := pathID(c, "contract_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), contractID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
