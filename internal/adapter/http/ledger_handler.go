package http

import (
	"net/http"

	ledgeruc "loanledger/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct{ uc *ledgeruc.Usecase }

func NewLedgerHandler(uc *ledgeruc.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type amountReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *LedgerHandler) bindAmount(c echo.Context) (decimal.Decimal, uint64, error) {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return decimal.Zero, 0, err
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return decimal.Zero, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return decimal.Zero, 0, err
	}
	return decimal.NewFromFloat(req.Amount), appID, nil
}

func (h *LedgerHandler) CreateEntry(c echo.Context) error {
	amount, appID, err := h.bindAmount(c)
	if err != nil {
		return h.bindErr(c, err)
	}
	dto, err := h.uc.CreateEntry(c.Request().Context(), appID, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) CreateRepayment(c echo.Context) error {
	amount, appID, err := h.bindAmount(c)
	if err != nil {
		return h.bindErr(c, err)
	}
	dto, err := h.uc.CreateRepayment(c.Request().Context(), appID, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) GetBalance(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.uc.GetBalance(c.Request().Context(), appID)
	if err != nil {
		return writeErr(c, err)
	}
	if dto == nil {
		return c.JSON(http.StatusOK, map[string]any{"application_id": appID, "balance": nil})
	}
	return c.JSON(http.StatusOK, dto)
}

type balanceReq struct {
	Amount float64 `json:"amount" validate:"gte=0,dec2"`
}

// CreateBalance is the administrative correction path; activation normally
// seeds the balance.
func (h *LedgerHandler) CreateBalance(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req balanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return h.bindErr(c, err)
	}
	dto, err := h.uc.CreateBalance(c.Request().Context(), appID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) UpdateBalance(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req balanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return h.bindErr(c, err)
	}
	dto, err := h.uc.UpdateBalance(c.Request().Context(), appID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) DeleteBalance(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.uc.DeleteBalance(c.Request().Context(), appID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LedgerHandler) GetStatement(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.uc.Statement(c.Request().Context(), appID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) bindErr(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return c.JSON(he.Code, ErrorResponse{Error: he.Message.(string)})
	}
	if fes := ToFieldErrors(err); len(fes) > 0 && fes[0].Field != "_" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fes})
	}
	return writeErr(c, err)
}
