package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/service"
)

// ContactHandler handles contact requests. Every route requires AuthMiddleware.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// respondContacts writes a list, or 404 when notFoundIfEmpty is set and there is nothing to show
func respondContacts(c *gin.Context, contacts []*domain.Contact, notFoundIfEmpty bool) {
	if notFoundIfEmpty && len(contacts) == 0 {
		respondError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactListResponse(contacts))
}

func contactID(c *gin.Context) (string, bool) {
	var uri dto.ContactIDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondValidationError(c, err)
		return "", false
	}
	return uri.ID, true
}

func contactFields(c *gin.Context) (domain.ContactFields, bool) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return domain.ContactFields{}, false
	}

	fields, err := req.Fields()
	if err != nil {
		respondValidationError(c, err)
		return domain.ContactFields{}, false
	}
	return fields, true
}

// List returns a page of contacts
func (h *ContactHandler) List(c *gin.Context) {
	user, _ := currentUser(c)

	var query dto.ListContactsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err)
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), user.ID, query.Limit, query.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondContacts(c, contacts, false)
}

// SearchByName returns contacts named contact_name
func (h *ContactHandler) SearchByName(c *gin.Context) {
	user, _ := currentUser(c)

	contacts, err := h.contactService.SearchByName(c.Request.Context(), user.ID, c.Query("contact_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondContacts(c, contacts, true)
}

// SearchBySurname returns contacts with surname contact_surname
func (h *ContactHandler) SearchBySurname(c *gin.Context) {
	user, _ := currentUser(c)

	contacts, err := h.contactService.SearchBySurname(c.Request.Context(), user.ID, c.Query("contact_surname"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondContacts(c, contacts, true)
}

// SearchByEmail returns the contact with email contact_email
func (h *ContactHandler) SearchByEmail(c *gin.Context) {
	user, _ := currentUser(c)

	contact, err := h.contactService.SearchByEmail(c.Request.Context(), user.ID, c.Query("contact_email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// UpcomingBirthdays returns contacts with a birthday in the next n days
func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	user, _ := currentUser(c)

	var query dto.BirthdayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err)
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(c.Request.Context(), user.ID, query.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	respondContacts(c, contacts, true)
}

// Get returns one contact
func (h *ContactHandler) Get(c *gin.Context) {
	user, _ := currentUser(c)

	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Create adds a contact
func (h *ContactHandler) Create(c *gin.Context) {
	user, _ := currentUser(c)

	fields, ok := contactFields(c)
	if !ok {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), user.ID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContactResponse(contact))
}

// Update replaces a contact
func (h *ContactHandler) Update(c *gin.Context) {
	user, _ := currentUser(c)

	id, ok := contactID(c)
	if !ok {
		return
	}

	fields, ok := contactFields(c)
	if !ok {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), user.ID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Delete removes a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	user, _ := currentUser(c)

	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
