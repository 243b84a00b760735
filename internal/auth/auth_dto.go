package auth

import "go-texerp/internal/tenant"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username   string   `json:"username" binding:"required"`
	Password   string   `json:"password" binding:"required,min=6"`
	IsAdmin    bool     `json:"is_admin"`
	CanAdd     bool     `json:"can_add"`
	CanEdit    bool     `json:"can_edit"`
	CanDelete  bool     `json:"can_delete"`
	DCClose    bool     `json:"dc_close"`
	ConcernIDs []string `json:"concern_ids" binding:"omitempty,dive,uuid"`
}

type UserResponse struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	IsAdmin    bool     `json:"is_admin"`
	CanAdd     bool     `json:"can_add"`
	CanEdit    bool     `json:"can_edit"`
	CanDelete  bool     `json:"can_delete"`
	DCClose    bool     `json:"dc_close"`
	IsActive   bool     `json:"is_active"`
	ConcernIDs []string `json:"concern_ids"`
}

// LoginResponse carries the token plus the resolved tenant payload:
// either an auto-selected tenant or the candidate list to choose from.
type LoginResponse struct {
	Token            string                `json:"token"`
	User             UserResponse          `json:"user"`
	AutoSelectTenant *tenant.TenantOption  `json:"auto_select_tenant,omitempty"`
	Tenants          []tenant.TenantOption `json:"tenants,omitempty"`
}
