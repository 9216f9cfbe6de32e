package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"xyzbank/internal/api/handler/dto"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/pkg/apperrors"
)

type CustomerHandler struct {
	service registry.RegistryService
	logger  *slog.Logger
}

func NewCustomerHandler(s registry.RegistryService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("registry service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// CreateCustomer handles POST /customers
// @Summary Register a new customer
// @Description Registers a customer with an ID of 3 letters followed by 3 digits and a non-negative annual income.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer registration request"
// @Success 201 {object} dto.CustomerResponse "Customer successfully registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Customer already exists"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register customer request")

	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	view, err := h.service.RegisterCustomer(r.Context(), req.CustomerID, req.Income())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrAlreadyExists) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to register customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer registered successfully", slog.String("customerID", view.CustomerID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(view))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Customer report
// @Description Returns one customer with eligibility, totals and every loan record.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID (3 letters + 3 digits)"
// @Success 200 {object} dto.CustomerResponse "Customer report"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	view, err := h.service.GetCustomerReport(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(view))
}

// ListCustomers handles GET /customers
// @Summary All customers report
// @Description Returns every registered customer ordered by customer ID.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	views := h.service.GetAllCustomersReport(r.Context())

	resp := make([]dto.CustomerResponse, len(views))
	for i, v := range views {
		resp[i] = dto.NewCustomerResponse(v)
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateIncome handles PUT /customers/{customerID}/income
// @Summary Update customer income
// @Description Replaces the annual income and recomputes loan eligibility.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID (3 letters + 3 digits)"
// @Param request body dto.UpdateIncomeRequest true "New income"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID}/income [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateIncome(r.Context(), customerID, req.Income()); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to update income", slog.Any("error", err))
		respondError(w, err)
		return
	}

	view, err := h.service.GetCustomerReport(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Customer income updated", slog.String("customerID", customerID), slog.Bool("eligible", view.Eligible))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(view))
}
