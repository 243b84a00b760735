package user

// UpdateUserRequest carries only the fields the administrator wants to
// change; nil pointers leave the stored value alone.
type UpdateUserRequest struct {
	Username   *string   `json:"username" binding:"omitempty,min=1"`
	IsAdmin    *bool     `json:"is_admin"`
	CanAdd     *bool     `json:"can_add"`
	CanEdit    *bool     `json:"can_edit"`
	CanDelete  *bool     `json:"can_delete"`
	DCClose    *bool     `json:"dc_close"`
	IsActive   *bool     `json:"is_active"`
	ConcernIDs *[]string `json:"concern_ids" binding:"omitempty,dive,uuid"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
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
	CreatedAt  string   `json:"created_at"`
}
