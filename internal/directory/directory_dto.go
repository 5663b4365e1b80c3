package directory

type PersonResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Label     string `json:"label,omitempty"`
}
