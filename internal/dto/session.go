package dto

// StartSessionRequest opens a session for one of the seeded users.
type StartSessionRequest struct {
	UserID    string `json:"userId" validate:"required,max=64"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// SwitchRoleRequest changes the role the session views the hostel as.
type SwitchRoleRequest struct {
	Role      string `json:"role" validate:"required,oneof=STUDENT ADMIN MAINTENANCE"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}
