package dto

type SendFeedbackRequest struct {
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Rating  int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Message string `json:"message" validate:"required,max=4000"`
}

type SendFeedbackResponse struct {
	Delivered bool `json:"delivered"`
}
