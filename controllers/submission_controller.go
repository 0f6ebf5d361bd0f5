package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/services"
)

// POST /contact
func CreateInquiry(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateInquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
		if _, err := subs.SubmitInquiry(c.Request.Context(), body); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Thank you for contacting us!")
	}
}

// POST /volunteer
func CreateVolunteer(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateVolunteerDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
		if _, err := subs.SubmitVolunteer(c.Request.Context(), body); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Thank you for your interest in volunteering!")
	}
}

// POST /newsletter
func Subscribe(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.NewsletterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
		created, err := subs.SubmitNewsletter(c.Request.Context(), body.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if !created {
			respondMessage(c, "You are already subscribed!")
			return
		}
		respondMessage(c, "Thank you for subscribing!")
	}
}

// GET /inquiries
func ListInquiries(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := subs.ListInquiries(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

// GET /volunteers
func ListVolunteers(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := subs.ListVolunteers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

var kindLabels = map[models.SubmissionKind]string{
	models.KindInquiry:   "Inquiry",
	models.KindVolunteer: "Volunteer",
}

// PUT /inquiries/:id, PUT /volunteers/:id
func UpdateSubmissionStatus(subs *services.SubmissionService, kind models.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
		err := subs.UpdateStatus(c.Request.Context(), kind, c.Param("id"), models.SubmissionStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, kindLabels[kind]+" updated")
	}
}

// DELETE /inquiries/:id, DELETE /volunteers/:id
func DeleteSubmission(subs *services.SubmissionService, kind models.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := subs.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, kindLabels[kind]+" deleted")
	}
}

// GET /newsletter
func ListSubscribers(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := subs.ListSubscribers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

// DELETE /newsletter/:id
func DeleteSubscriber(subs *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := subs.DeleteSubscriber(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Subscriber removed")
	}
}
