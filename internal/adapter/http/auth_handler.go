package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/usecase/lender"
)

type AuthHandler struct {
	uc  *lender.Usecase
	log logrus.FieldLogger
}

func NewAuthHandler(uc *lender.Usecase, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

type lenderResp struct {
	Success bool              `json:"success"`
	Lender  *lender.LenderDTO `json:"lender"`
}

type sessionResp struct {
	Success bool `json:"success"`
	*lender.SessionDTO
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req lender.RegisterInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, lenderResp{Success: true, Lender: out})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req lender.LoginInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, sessionResp{Success: true, SessionDTO: out})
}
