package httptransport

type RegisterContentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentHash string `json:"content_hash"`
	ContentType string `json:"content_type"`
	IsPublic    bool   `json:"is_public"`
}

type ContentDTO struct {
	ContentID   uint64 `json:"content_id"`
	Creator     string `json:"creator"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentHash string `json:"content_hash"`
	ContentType string `json:"content_type"`
	IsPublic    bool   `json:"is_public"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type RegisterContentResponse struct {
	Item ContentDTO `json:"item"`
}

type GetContentResponse struct {
	Item ContentDTO `json:"item"`
}

type ListContentsResponse struct {
	Items []ContentDTO `json:"items"`
}

type UpdateMetadataRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateMetadataResponse struct {
	Item ContentDTO `json:"item"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type TransferOwnershipResponse struct {
	Item ContentDTO `json:"item"`
}

type VerifyOwnershipResponse struct {
	ContentID uint64 `json:"content_id"`
	Principal string `json:"principal"`
	IsOwner   bool   `json:"is_owner"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
