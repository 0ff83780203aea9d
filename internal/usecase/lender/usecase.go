package lender

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loanbook-backend/internal/domain/apperr"
	domain "loanbook-backend/internal/domain/lender"
	"loanbook-backend/internal/validation"
)

const bcryptCost = 10

type RegisterInput struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LenderDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionDTO struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Lender    LenderDTO `json:"lender"`
}

// TokenIssuer mints bearer tokens bound to a lender.
type TokenIssuer interface {
	Issue(lenderID uint64) (string, time.Time, error)
}

type Usecase struct {
	lenders   domain.Repository
	tokens    TokenIssuer
	validator *validation.CustomValidator
	log       logrus.FieldLogger
}

func NewUsecase(lenders domain.Repository, tokens TokenIssuer, log logrus.FieldLogger) *Usecase {
	return &Usecase{lenders: lenders, tokens: tokens, validator: validation.New(), log: log}
}

func toDTO(l *domain.Lender) LenderDTO {
	return LenderDTO{ID: l.ID, Name: l.Name, Email: l.Email, CreatedAt: l.CreatedAt}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*LenderDTO, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := u.validator.Validate(in); err != nil {
		return nil, apperr.Invalid("invalid input", validation.ToFieldErrors(err)...)
	}

	_, err := u.lenders.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("a lender with email %s already exists", in.Email)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	l := &domain.Lender{Name: in.Name, Email: in.Email, PasswordHash: string(hash)}
	if err := u.lenders.Create(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a lender with email %s already exists", in.Email)
		}
		return nil, apperr.Internal(err)
	}

	u.log.WithField("lender_id", l.ID).Info("lender registered")
	dto := toDTO(l)
	return &dto, nil
}

// Login never says which of email or password was wrong.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := u.validator.Validate(in); err != nil {
		return nil, apperr.Invalid("invalid input", validation.ToFieldErrors(err)...)
	}

	l, err := u.lenders.GetByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Unauthorized("invalid credentials")
	case err != nil:
		return nil, apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(in.Password)); err != nil {
		u.log.WithField("lender_id", l.ID).Warn("login rejected")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	tok, exp, err := u.tokens.Issue(l.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u.log.WithField("lender_id", l.ID).Info("lender logged in")
	return &SessionDTO{Token: tok, TokenType: "Bearer", ExpiresAt: exp, Lender: toDTO(l)}, nil
}
