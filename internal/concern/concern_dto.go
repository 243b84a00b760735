package concern

type CreateConcernRequest struct {
	Name       string `json:"name" binding:"required"`
	VendorCode string `json:"vendor_code"`
}

type UpdateConcernRequest struct {
	Name       string `json:"name"`
	VendorCode string `json:"vendor_code"`
}

type ConcernResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VendorCode string `json:"vendor_code"`
}
