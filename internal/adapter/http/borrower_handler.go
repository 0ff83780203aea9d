package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/adapter/middleware"
	"loanbook-backend/internal/usecase/borrower"
)

type BorrowerHandler struct {
	uc  *borrower.Usecase
	log logrus.FieldLogger
}

func NewBorrowerHandler(uc *borrower.Usecase, log logrus.FieldLogger) *BorrowerHandler {
	return &BorrowerHandler{uc: uc, log: log}
}

type borrowerResp struct {
	Success  bool `json:"success"`
	Borrower any  `json:"borrower"`
}

type borrowerListResp struct {
	Success   bool                   `json:"success"`
	Borrowers []borrower.BorrowerDTO `json:"borrowers"`
}

type okResp struct {
	Success bool `json:"success"`
}

func (h *BorrowerHandler) Create(c echo.Context) error {
	var req borrower.CreateInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, borrowerResp{Success: true, Borrower: out})
}

func (h *BorrowerHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var req borrower.UpdateInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Request().Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, borrowerResp{Success: true, Borrower: out})
}

// Get includes only the loans the caller issued to this borrower.
func (h *BorrowerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, borrowerResp{Success: true, Borrower: out})
}

func (h *BorrowerHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.PrincipalFrom(c), c.QueryParam("name"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, borrowerListResp{Success: true, Borrowers: out})
}

func (h *BorrowerHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.PrincipalFrom(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, okResp{Success: true})
}
