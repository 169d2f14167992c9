package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/summary"
	"github.com/nimbuscrm/presence-backend-go/internal/handler/http/middleware"
	"github.com/nimbuscrm/presence-backend-go/internal/handler/http/response"
)

type SummaryHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	GetMyCalendar(w http.ResponseWriter, r *http.Request)
	GetMyPercentage(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// monthYearParams reads the month/year query params, defaulting to the
// current month when absent.
func monthYearParams(r *http.Request) (month, year int, err error) {
	now := time.Now()
	month = int(now.Month())
	year = now.Year()

	if raw := r.URL.Query().Get("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			return 0, 0, summary.ErrInvalidMonth
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			return 0, 0, summary.ErrInvalidYear
		}
	}

	return month, year, nil
}

// GetSummary implements SummaryHandler.
func (h *summaryHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	month, year, err := monthYearParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter employee.RosterFilter
	if departmentID := r.URL.Query().Get("department_id"); departmentID != "" {
		filter.DepartmentID = &departmentID
	}
	if positionID := r.URL.Query().Get("position_id"); positionID != "" {
		filter.PositionID = &positionID
	}

	result, err := h.summaryService.GetSummary(r.Context(), identity.CompanyID, month, year, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeAttendance implements SummaryHandler.
func (h *summaryHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	month, year, err := monthYearParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeId")

	result, err := h.summaryService.GetEmployeeAttendance(r.Context(), identity.CompanyID, employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyCalendar implements SummaryHandler.
func (h *summaryHandlerImpl) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	month, year, err := monthYearParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetMonthlyCalendar(r.Context(), identity.CompanyID, identity.UserID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyPercentage implements SummaryHandler.
func (h *summaryHandlerImpl) GetMyPercentage(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	month, year, err := monthYearParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetAttendancePercentage(r.Context(), identity.CompanyID, identity.UserID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
