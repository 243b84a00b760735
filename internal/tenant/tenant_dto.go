package tenant

type CreateTenantRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	FinancialYear string `json:"financial_year" binding:"required"`
}

// TenantOption is one selectable tenant context offered at login.
type TenantOption struct {
	TenantID      string `json:"tenant_id"`
	CompanyName   string `json:"company_name"`
	FinancialYear string `json:"financial_year"`
}

type TenantResponse struct {
	ID            string `json:"id"`
	ConcernID     string `json:"concern_id"`
	CompanyName   string `json:"company_name"`
	FinancialYear string `json:"financial_year"`
}
