package models

// Student is the normalized view of a student record.
type Student struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id,omitempty"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AcademyID string `json:"academy_id,omitempty"`
	BranchID  string `json:"branch_id,omitempty"`
}
