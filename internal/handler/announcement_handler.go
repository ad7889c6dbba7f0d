package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hillcrest/activities-backend/internal/middleware"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
	"github.com/hillcrest/activities-backend/internal/validator"
)

// isoLayouts are the accepted date formats, tried in order. Offsets are
// honored when present; naive datetimes are taken as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// AnnouncementHandler handles the public and management announcement endpoints.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// ListActive godoc
// GET /announcements
// Public list: active announcements only.
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	announcements, err := h.announcementService.ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"announcements": announcements})
}

// ListAll godoc
// GET /announcements/manage?teacher_username=...
// Management list: every announcement regardless of expiration.
func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	announcements, err := h.announcementService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	response.Success(c, http.StatusOK, gin.H{"announcements": announcements})
}

// Create godoc
// POST /announcements?teacher_username=...
func (h *AnnouncementHandler) Create(c *gin.Context) {
	teacher := middleware.GetTeacher(c)
	if teacher == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.CreateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	expirationDate, err := parseISODate(req.ExpirationDate)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"expiration_date": "must be a valid ISO date"})
		return
	}
	startDate, fields := parseOptionalDate(req.StartDate, "start_date")
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.announcementService.Create(c.Request.Context(), teacher.Username, req.Title, req.Body, startDate, expirationDate)
	if err != nil {
		failAnnouncementError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"announcement": a})
}

// Update godoc
// PUT /announcements/:id?teacher_username=...
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	upd := model.AnnouncementUpdate{Title: req.Title, Body: req.Body}

	startDate, fields := parseOptionalDate(req.StartDate, "start_date")
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	upd.StartDate = startDate

	if req.ExpirationDate != nil {
		expirationDate, err := parseISODate(*req.ExpirationDate)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"expiration_date": "must be a valid ISO date"})
			return
		}
		upd.ExpirationDate = &expirationDate
	}

	a, err := h.announcementService.Update(c.Request.Context(), id, upd)
	if err != nil {
		failAnnouncementError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcement": a})
}

// Delete godoc
// DELETE /announcements/:id?teacher_username=...
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		failAnnouncementError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// failAnnouncementError maps service/repository errors to HTTP statuses.
func failAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrBlankContent):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"body": service.ErrBlankContent.Error()})
	case errors.Is(err, service.ErrBadDateRange):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"start_date": service.ErrBadDateRange.Error()})
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseISODate parses an ISO-8601 date string, returning UTC.
func parseISODate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseOptionalDate(value *string, field string) (*time.Time, map[string]string) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseISODate(*value)
	if err != nil {
		return nil, map[string]string{field: "must be a valid ISO date"}
	}
	return &t, nil
}
