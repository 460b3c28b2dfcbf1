package models

// Academy is the normalized view of an academy record. The legacy backend
// serves these fields under inconsistent key spellings; normalization happens
// in the service layer before an Academy leaves the gateway.
type Academy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameAlt     string `json:"name_alt,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Branch is the normalized view of an academy branch.
type Branch struct {
	ID        string `json:"id"`
	AcademyID string `json:"academy_id"`
	Name      string `json:"name"`
	NameAlt   string `json:"name_alt,omitempty"`
	Address   string `json:"address,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Phone     string `json:"phone,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Email     string `json:"email,omitempty"`
}
