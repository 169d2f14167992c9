package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/handler/http/middleware"
	"github.com/nimbuscrm/presence-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetTodayStatus(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	presenceService attendance.PresenceService
	recordService   attendance.RecordService
}

func NewAttendanceHandler(
	presenceService attendance.PresenceService,
	recordService attendance.RecordService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		presenceService: presenceService,
		recordService:   recordService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.presenceService.CheckIn(r.Context(), identity.CompanyID, identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.presenceService.CheckOut(r.Context(), identity.CompanyID, identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetTodayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTodayStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.presenceService.GetTodayStatus(r.Context(), identity.CompanyID, identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode mark request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Mark(r.Context(), identity.CompanyID, identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Attendance marked", result)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", result)
}

// BulkMark implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk mark request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.BulkMark(r.Context(), identity.CompanyID, identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk mark processed", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.recordService.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.recordService.Delete(r.Context(), identity.CompanyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}
