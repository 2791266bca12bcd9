package request

// FacialRegistrationRequest is the inbound payload for the promotion
// workflow. BaseImage holds the standard base64 encoding of the photo.
type FacialRegistrationRequest struct {
	Username  string `json:"username" validate:"required"`
	BaseImage string `json:"base_image" validate:"required"`
	ImageName string `json:"image_name" validate:"required"`
}

type ListCustomersRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}
