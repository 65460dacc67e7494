package dto

type CreateUserRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	GivenName      string   `json:"given_name" validate:"required,min=2"`
	SurName        string   `json:"sur_name"`
	PhoneNumber    string   `json:"phone_number"`
	JobTitle       string   `json:"job_title"`
	OfficeLocation string   `json:"office_location"`
	OracleID       string   `json:"oracle_id"`
	Roles          []string `json:"roles"`
}

type UpdateUserRequest struct {
	Email          string `json:"email" validate:"required,email"`
	GivenName      string `json:"given_name" validate:"required,min=2"`
	SurName        string `json:"sur_name"`
	PhoneNumber    string `json:"phone_number"`
	JobTitle       string `json:"job_title"`
	OfficeLocation string `json:"office_location"`
}

type SearchUserRequest struct {
	GivenName string `json:"given_name"`
	Email     string `json:"email"`
	Page      int    `json:"page" validate:"min=1"`
	Size      int    `json:"size" validate:"min=1,max=100"`
}

type AssignRoleRequest struct {
	RoleUUID string `json:"role_uuid" validate:"required"`
}
