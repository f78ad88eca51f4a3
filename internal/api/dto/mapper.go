package dto

import "github.com/dedsoft/erp-api/internal/domain"

func FromLicense(l *domain.License) LicenseResponse {
	return LicenseResponse{
		LicenseKey:       l.LicenseKey,
		ClientName:       l.ClientName,
		ClientCompany:    l.ClientCompany,
		ClientEmail:      l.ClientEmail,
		ClientPhone:      l.ClientPhone,
		AdminUsername:    l.AdminUsername,
		IsActive:         l.IsActive,
		IsSuspended:      l.IsSuspended,
		SuspensionReason: l.SuspensionReason,
		ExpiresAt:        l.ExpiresAt,
		MaxUsers:         l.MaxUsers,
		CreatedAt:        l.CreatedAt,
	}
}

func FromLicenses(licenses []domain.License) []LicenseResponse {
	out := make([]LicenseResponse, len(licenses))
	for i := range licenses {
		out[i] = FromLicense(&licenses[i])
	}
	return out
}

func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		LastLogin: u.LastLogin,
	}
}

func FromUsers(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}
