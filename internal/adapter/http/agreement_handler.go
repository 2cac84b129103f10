package http

import (
	"net/http"

	agreementuc "loanledger/internal/usecase/agreement"

	"github.com/labstack/echo/v4"
)

type AgreementHandler struct{ uc *agreementuc.Usecase }

func NewAgreementHandler(uc *agreementuc.Usecase) *AgreementHandler {
	return &AgreementHandler{uc: uc}
}

type createTermsReq struct {
	Version  int    `json:"version"  validate:"required,gt=0"`
	Title    string `json:"title"    validate:"required"`
	Body     string `json:"body"`
	Required bool   `json:"required"`
}

func (h *AgreementHandler) CreateTerms(c echo.Context) error {
	var req createTermsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	t, err := h.uc.CreateTerms(c.Request().Context(), agreementuc.CreateTermsInput{
		Version:  req.Version,
		Title:    req.Title,
		Body:     req.Body,
		Required: req.Required,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *AgreementHandler) ListTerms(c echo.Context) error {
	ts, err := h.uc.ListTerms(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

type recordAgreementReq struct {
	TermsIDs []uint64 `json:"terms_ids" validate:"required,min=1,dive,gt=0"`
}

// RecordAgreement replaces the user's accepted set wholesale.
func (h *AgreementHandler) RecordAgreement(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return writeErr(c, err)
	}
	var req recordAgreementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dtos, err := h.uc.Record(c.Request().Context(), userID, req.TermsIDs)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dtos)
}

func (h *AgreementHandler) ListAgreements(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return writeErr(c, err)
	}
	dtos, err := h.uc.ListAccepted(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *AgreementHandler) CheckRequiredAgreements(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return writeErr(c, err)
	}
	dto, err := h.uc.CheckRequired(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
