package account

import (
	domain "filetag-api/internal/domain/account"
)

func fromDBModel(model *Account) *domain.Account {
	var a = &domain.Account{
		Email:          model.Email,
		OwnerUserID:    model.OwnerUserID,
		ActivationKey:  model.ActivationKey,
		SignInCodeHash: model.SignInCodeHash,
		SignInKey:      model.SignInKey,
		IsActivated:    model.IsActivated,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return a
}

func fromDBModels(models *Accounts) domain.Accounts {
	as := make(domain.Accounts, len(*models))
	for idx, a := range *models {
		as[idx] = fromDBModel(a)
	}

	return as
}
