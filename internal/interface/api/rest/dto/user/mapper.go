package user

import (
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/interface/api/rest/dto/auth"
)

// ToResponseUser never carries the password hash.
func ToResponseUser(uDomain user.User) User {
	return User{
		UUID:      uDomain.UUID,
		Name:      uDomain.Name,
		Email:     uDomain.Email,
		IsAdmin:   uDomain.IsAdmin,
		CreatedAt: uDomain.CreatedAt,
	}
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(r auth.RegisterRequest) user.User {
	return user.User{
		Name:    r.Name,
		Email:   r.Email,
		IsAdmin: r.IsAdmin,
	}
}
