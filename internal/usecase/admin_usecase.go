package usecase

import (
	"context"
	"time"

	"velora/internal/domain/repository"
)

type AdminUseCase struct {
	userRepo repository.UserRepository
}

func NewAdminUseCase(userRepo repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{userRepo: userRepo}
}

type AccountDTO struct {
	ID                string `json:"id"`
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"provider_account_id"`
	Type              string `json:"type"`
	CreatedAt         string `json:"created_at"`
}

type UserAccountsResponse struct {
	UserID   string       `json:"user_id"`
	Email    string       `json:"email"`
	Accounts []AccountDTO `json:"accounts"`
}

// GetUserAccounts returns the external auth accounts linked to a user.
func (uc *AdminUseCase) GetUserAccounts(ctx context.Context, userID string) (*UserAccountsResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.userRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := &UserAccountsResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Accounts: make([]AccountDTO, 0, len(accounts)),
	}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, AccountDTO{
			ID:                account.ID,
			Provider:          account.Provider,
			ProviderAccountID: account.ProviderAccountID,
			Type:              account.Type,
			CreatedAt:         account.CreatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}
