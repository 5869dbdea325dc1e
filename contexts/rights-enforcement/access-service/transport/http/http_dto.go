package httptransport

type GrantDTO struct {
	ContentID   uint64 `json:"content_id"`
	LicenseID   uint64 `json:"license_id"`
	User        string `json:"user"`
	PurchasedAt string `json:"purchased_at"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	UsesLeft    *int64 `json:"uses_left,omitempty"`
	Active      bool   `json:"active"`
	Valid       bool   `json:"valid"`
	UpdatedAt   string `json:"updated_at"`
}

type PurchaseLicenseResponse struct {
	Item GrantDTO `json:"item"`
}

type RevokeGrantRequest struct {
	User string `json:"user"`
}

type RevokeGrantResponse struct {
	Item GrantDTO `json:"item"`
}

type HasAccessResponse struct {
	ContentID uint64 `json:"content_id"`
	User      string `json:"user"`
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason"`
}

type GetGrantResponse struct {
	Item GrantDTO `json:"item"`
}

type ListGrantsResponse struct {
	Items []GrantDTO `json:"items"`
}

type RotateAccessKeyRequest struct {
	KeyMaterial string `json:"key_material"`
}

type RotateAccessKeyResponse struct {
	ContentID uint64 `json:"content_id"`
	Key       string `json:"key"`
	UsesLeft  *int64 `json:"uses_left,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type GetAccessKeyResponse struct {
	ContentID uint64 `json:"content_id"`
	Key       string `json:"key"`
	UpdatedAt string `json:"updated_at"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
