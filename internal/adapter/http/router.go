package http

import "github.com/labstack/echo/v4"

type Routes struct {
	Health    *Handler
	Auth      *AuthHandler
	Borrowers *BorrowerHandler
	Loans     *LoanHandler
}

// Register mounts /health at the root and everything else under /api,
// where apiMW (auth, idempotency) applies.
func Register(e *echo.Echo, r Routes, apiMW ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)

	api := e.Group("/api", apiMW...)

	api.POST("/auth/register", r.Auth.Register)
	api.POST("/auth/login", r.Auth.Login)

	api.GET("/borrowers", r.Borrowers.List)
	api.POST("/borrowers", r.Borrowers.Create)
	api.GET("/borrowers/:id", r.Borrowers.Get)
	api.PUT("/borrowers/:id", r.Borrowers.Update)
	api.DELETE("/borrowers/:id", r.Borrowers.Delete)

	api.GET("/loans", r.Loans.ListLoans)
	api.POST("/loans", r.Loans.CreateLoan)
	api.GET("/loans/stats", r.Loans.Stats)
	api.GET("/loans/:id", r.Loans.GetLoan)
}
