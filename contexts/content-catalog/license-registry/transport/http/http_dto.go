package httptransport

type CreateLicenseRequest struct {
	LicenseType         string `json:"license_type"`
	Price               int64  `json:"price"`
	DurationMinutes     *int64 `json:"duration_minutes,omitempty"`
	MaxUses             *int64 `json:"max_uses,omitempty"`
	CommercialUse       bool   `json:"commercial_use"`
	ModificationAllowed bool   `json:"modification_allowed"`
}

type LicenseDTO struct {
	LicenseID           uint64 `json:"license_id"`
	ContentID           uint64 `json:"content_id"`
	Creator             string `json:"creator"`
	LicenseType         string `json:"license_type"`
	Price               int64  `json:"price"`
	DurationMinutes     *int64 `json:"duration_minutes,omitempty"`
	MaxUses             *int64 `json:"max_uses,omitempty"`
	CommercialUse       bool   `json:"commercial_use"`
	ModificationAllowed bool   `json:"modification_allowed"`
	Active              bool   `json:"active"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

type CreateLicenseResponse struct {
	Item LicenseDTO `json:"item"`
}

type GetLicenseResponse struct {
	Item LicenseDTO `json:"item"`
}

type ListLicensesResponse struct {
	Items []LicenseDTO `json:"items"`
}

type UpdateTermsRequest struct {
	Price               int64  `json:"price"`
	DurationMinutes     *int64 `json:"duration_minutes,omitempty"`
	MaxUses             *int64 `json:"max_uses,omitempty"`
	CommercialUse       bool   `json:"commercial_use"`
	ModificationAllowed bool   `json:"modification_allowed"`
	Active              bool   `json:"active"`
}

type UpdateTermsResponse struct {
	Item LicenseDTO `json:"item"`
}

type DeactivateLicenseResponse struct {
	Item LicenseDTO `json:"item"`
}

type IsActiveResponse struct {
	LicenseID uint64 `json:"license_id"`
	Active    bool   `json:"active"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
