// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"librarium/internal/domain/entity"
)

// LoginInput defines the data required to resolve a credential.
type LoginInput struct {
	Username string `json:"username" validate:"required,email"`
	Secret   string `json:"password" validate:"required"`
}

// LoginOutput returns the resolved role and the issued access token.
type LoginOutput struct {
	Role        entity.Role `json:"rol"`
	AccessToken string      `json:"accessToken"`
}

// AuthUsecase resolves which role, if any, a username/secret pair
// authenticates as. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
