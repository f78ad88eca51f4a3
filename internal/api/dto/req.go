package dto

type LoginRequest struct {
	Username   string `json:"username" binding:"required" example:"admin"`
	Password   string `json:"password" binding:"required" example:"secret"`
	LicenseKey string `json:"license_key" binding:"required" example:"AB12-CD34-EF56-GH78"`
}

type CreateLicenseRequest struct {
	// LicenseKey is optional; one is generated when omitted.
	LicenseKey    string `json:"license_key" example:"AB12-CD34-EF56-GH78"`
	ClientName    string `json:"client_name" binding:"required" example:"Jane Smith"`
	ClientCompany string `json:"client_company" example:"Acme Trading"`
	ClientEmail   string `json:"client_email" example:"jane@acme.example"`
	ClientPhone   string `json:"client_phone" example:"+123456789"`
	AdminUsername string `json:"admin_username" binding:"required" example:"admin"`
	AdminPassword string `json:"admin_password" binding:"required,min=8" example:"change-me-soon"`
	// ExpiresAt accepts RFC3339 or YYYY-MM-DD; empty means perpetual.
	ExpiresAt string `json:"expires_at" example:"2027-01-31"`
	MaxUsers  int    `json:"max_users" example:"10"`
}

type UpdateLicenseRequest struct {
	// LicenseKey, when present, must match the key in the path; re-keying
	// an existing license is not supported.
	LicenseKey    string `json:"license_key"`
	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	MaxUsers      int    `json:"max_users"`
}

type SuspendLicenseRequest struct {
	Reason string `json:"reason" example:"payment overdue"`
}

type ExtendLicenseRequest struct {
	Days int `json:"days" binding:"required,min=1" example:"30"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required" example:"jsmith"`
	Password string `json:"password" binding:"required,min=8" example:"change-me-soon"`
	Email    string `json:"email" binding:"required,email" example:"jsmith@acme.example"`
	FullName string `json:"full_name" example:"John Smith"`
	Phone    string `json:"phone" example:"+123456789"`
}
