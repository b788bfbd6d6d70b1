package models

// Tenant is one row of the master directory's Clients tab.
type Tenant struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	LogoURL   string `json:"logo_url,omitempty" validate:"omitempty,url"`
	SheetID   string `json:"sheet_id" validate:"required"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Notifiable reports whether scheduled emails can be sent to the tenant.
func (t *Tenant) Notifiable() bool {
	return t != nil && t.Email != "" && t.SheetID != ""
}

// CreateTenantRequest is the admin payload for registering a tenant. Username
// and password are generated when left empty.
type CreateTenantRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	LogoURL  string `json:"logo_url" validate:"omitempty,url"`
	SheetID  string `json:"sheet_id" validate:"required"`
	Username string `json:"username"`
	Password string `json:"password"`
}
