package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"xyzbank/internal/api/handler/dto"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type LoanHandler struct {
	service registry.RegistryService
	logger  *slog.Logger
}

func NewLoanHandler(s registry.RegistryService, l *slog.Logger) *LoanHandler {
	if s == nil {
		panic("registry service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field, code := http.StatusInternalServerError, "An unexpected error occurred.", "", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrDuplicateRecord):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrNotEligible):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &appErr) && errors.Is(err, apperrors.ErrCapacityExceeded):
		status, message, code = http.StatusInsufficientStorage, appErr.Message, appErr.Code
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.As(err, &appErr):
		message, code = appErr.Message, appErr.Code
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getCustomerIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "customerID")
	if id == "" {
		return "", fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	if !customer.ValidID(id) {
		return "", fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, id)
	}
	return customer.NormalizeID(id), nil
}

func getRecordIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "recordID")
	if !loan.ValidRecordID(id) {
		return "", fmt.Errorf("%w: recordID must be exactly 6 digits: %q", apperrors.ErrInvalidArgument, id)
	}
	return id, nil
}

// AddLoan attaches a loan record to a customer.
//
// @Summary Add a loan to a customer
// @Description Adds a typed loan record. The record ID must be unique across all customers and the registry must have a free record slot.
// @Tags Loans
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID (3 letters + 3 digits)"
// @Param request body dto.AddLoanRequest true "Loan payload"
// @Success 201 {object} dto.CustomerResponse "Loan added; returns the updated customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Record ID already in use"
// @Failure 422 {object} dto.ErrorResponse "Customer would exceed the eligibility limit"
// @Failure 507 {object} dto.ErrorResponse "Maximum number of records reached"
// @Router /customers/{customerID}/loans [post]
// @Security BearerAuth
func (h *LoanHandler) AddLoan(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.AddLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	l, err := req.ToLoan()
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			err = fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
		}
		respondError(w, err)
		return
	}

	if err := h.service.AddLoan(r.Context(), customerID, l); err != nil {
		h.logger.WarnContext(r.Context(), "Service rejected loan", slog.String("customerID", customerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	view, err := h.service.GetCustomerReport(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Loan added", slog.String("customerID", customerID), slog.String("recordID", l.RecordID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(view))
}

// RemoveLoan deletes a loan record from a customer.
//
// @Summary Remove a loan from a customer
// @Description Removes the loan with the given record ID and frees its record slot.
// @Tags Loans
// @Produce json
// @Param customerID path string true "Customer ID (3 letters + 3 digits)"
// @Param recordID path string true "Record ID (6 digits)"
// @Success 204 "Loan removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer or record ID"
// @Failure 404 {object} dto.ErrorResponse "Customer or record not found"
// @Router /customers/{customerID}/loans/{recordID} [delete]
// @Security BearerAuth
func (h *LoanHandler) RemoveLoan(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	recordID, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.RemoveLoan(r.Context(), customerID, recordID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to remove loan", slog.String("customerID", customerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan removed", slog.String("customerID", customerID), slog.String("recordID", recordID))
	respondJSON(w, http.StatusNoContent, nil)
}
