package dto

type UserResponse struct {
	UUID           string         `json:"uuid,omitempty"`
	GivenName      string         `json:"given_name,omitempty"`
	SurName        string         `json:"sur_name,omitempty"`
	Email          string         `json:"email,omitempty"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	JobTitle       string         `json:"job_title,omitempty"`
	OfficeLocation string         `json:"office_location,omitempty"`
	OracleID       string         `json:"oracle_id,omitempty"`
	Roles          []RoleResponse `json:"roles,omitempty"`
	CreatedAt      int64          `json:"created_at,omitempty"`
	UpdatedAt      int64          `json:"updated_at,omitempty"`
}
