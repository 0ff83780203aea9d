package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/adapter/middleware"
	"loanbook-backend/internal/usecase/loan"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log logrus.FieldLogger
}

func NewLoanHandler(uc *loan.Usecase, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type loanDetailResp struct {
	Success bool `json:"success"`
	*loan.LoanDetail
}

type loanListResp struct {
	Success bool           `json:"success"`
	Loans   []loan.LoanDTO `json:"loans"`
}

type statsResp struct {
	Success bool           `json:"success"`
	Stats   *loan.StatsDTO `json:"stats"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req loan.CreateLoanInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, loanDetailResp{Success: true, LoanDetail: out})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, loanDetailResp{Success: true, LoanDetail: out})
}

// ListLoans accepts ?name= (borrower name substring) and ?status=.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	in := loan.ListInput{Name: c.QueryParam("name"), Status: c.QueryParam("status")}
	out, err := h.uc.List(c.Request().Context(), middleware.PrincipalFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, loanListResp{Success: true, Loans: out})
}

func (h *LoanHandler) Stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, statsResp{Success: true, Stats: out})
}
