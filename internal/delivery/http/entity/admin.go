package entity

type AdminUpdateUserRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=student admin"`
	IsActive *bool   `json:"is_active"`
}
