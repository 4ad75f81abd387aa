package user

import (
	domain "filetag-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UserID:       model.UserID,
		PrimaryEmail: model.PrimaryEmail,

		CreatedAt: model.CreatedAt,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
