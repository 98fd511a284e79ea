package request

import "fnol_intake/internal/usecase"

type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Roe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret123"`
}

func (r RegisterRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"client@example.com"`
	Password string `json:"password" binding:"required" example:"client123"`
}

type UpdateInsuranceCompanyRequest struct {
	InsuranceCompany string `json:"insurance_company" example:"MAPFRE"`
}
