package dto

type CreateInquiryDTO struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Subject string `json:"subject" binding:"max=300"`
	Message string `json:"message" binding:"required,max=8000"`
}

type CreateVolunteerDTO struct {
	Name         string `json:"name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"max=50"`
	Skills       string `json:"skills" binding:"max=2000"`
	Availability string `json:"availability" binding:"max=500"`
	Motivation   string `json:"motivation" binding:"max=8000"`
}

type NewsletterDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
