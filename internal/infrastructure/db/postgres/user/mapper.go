package user

import (
	domain "excel-analytics-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:         model.UUID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		IsAdmin:      model.IsAdmin,

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
