package handlers

import (
	"net/http"
	"strings"

	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Create customer
// @Description  Admin only. Requires email, full_name, role, plant and password.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]interface{}  true  "Customer fields"
// @Success      201   {object}  models.Customer
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/customers [post]
// @Security     BearerAuth
func (h *Handler) createCustomer(c *gin.Context) {
	var payload map[string]any
	if ok := h.bindJSONOrBadRequest(c, &payload); !ok {
		return
	}

	in, err := service.CustomerInputFrom(payload)
	if err != nil {
		h.respondServiceError(c, err, "customer_input_invalid")
		return
	}

	actor := currentSession(c)
	cust, err := h.services.Customers.Create(c.Request.Context(), actor, in)
	if err != nil {
		h.respondServiceError(c, err, "customer_create_failed", "email", in.Email, "actor", actor.Email)
		return
	}
	if h.log != nil {
		h.log.Infow("customer_created", "email", cust.Email, "role", cust.Role, "actor", actor.Email)
	}
	c.JSON(http.StatusCreated, cust)
}

// @Summary      List customers
// @Description  Non-admin callers only see their own plant.
// @Tags         customers
// @Produce      json
// @Param        plant  query   string  false  "Plant"
// @Param        role   query   string  false  "Role"
// @Param        limit  query   int     false  "Max rows (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, customers"
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/customers [get]
// @Security     BearerAuth
func (h *Handler) listCustomers(c *gin.Context) {
	f := service.CustomerFilter{
		Plant: strings.TrimSpace(c.Query("plant")),
		Role:  strings.ToLower(strings.TrimSpace(c.Query("role"))),
		Limit: parseLimit(c),
	}
	list, err := h.services.Customers.List(c.Request.Context(), currentSession(c), f)
	if err != nil {
		h.respondServiceError(c, err, "customers_list_failed", "plant", f.Plant, "role", f.Role)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(list),
		"customers": list,
	})
}

// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        email  path      string  true  "Customer email"
// @Success      200    {object}  models.Customer
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/customers/{email} [get]
// @Security     BearerAuth
func (h *Handler) getCustomer(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	cust, err := h.services.Customers.Get(c.Request.Context(), currentSession(c), email)
	if err != nil {
		h.respondServiceError(c, err, "customer_get_failed", "email", email)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// @Summary      Delete customers by role
// @Description  Admin only. Removes every customer holding the given role.
// @Tags         customers
// @Produce      json
// @Param        role  query     string  true  "Role"
// @Success      200   {object}  map[string]interface{}  "deleted, role"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/customers [delete]
// @Security     BearerAuth
func (h *Handler) deleteCustomersByRole(c *gin.Context) {
	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": (&service.MissingFieldsError{Fields: []string{"role"}}).Error()})
		return
	}

	actor := currentSession(c)
	n, err := h.services.Customers.DeleteByRole(c.Request.Context(), actor, role)
	if err != nil {
		h.respondServiceError(c, err, "customers_delete_failed", "role", role, "actor", actor.Email)
		return
	}
	if h.log != nil {
		h.log.Infow("customers_deleted", "role", role, "count", n, "actor", actor.Email)
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": n,
		"role":    role,
	})
}
