package models

// Complaint is the normalized view of a complaint/report record.
type Complaint struct {
	ID          string `json:"id"`
	Sequence    string `json:"sequence,omitempty"`
	Description string `json:"description"`
	TypeID      string `json:"type_id,omitempty"`
	TypeName    string `json:"type_name,omitempty"`
	StatusID    string `json:"status_id,omitempty"`
	StatusName  string `json:"status_name,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
	Date        string `json:"date,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// ComplaintType is a reference record used to populate selection lists.
type ComplaintType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ComplaintStatus is a reference record; complaint lists resolve status
// labels against it when the legacy payload carries only a status id.
type ComplaintStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
