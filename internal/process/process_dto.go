package process

type CreateProcessRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate" binding:"omitempty,gte=0"`
}

type UpdateProcessRequest struct {
	Name *string  `json:"name" binding:"omitempty,min=1"`
	Rate *float64 `json:"rate" binding:"omitempty,gte=0"`
}

type ProcessResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}
