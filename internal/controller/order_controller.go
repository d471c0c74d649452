package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/dto"
	"charity-merch-api/internal/middleware"
	"charity-merch-api/internal/model"
	"charity-merch-api/internal/service"
)

type OrderController struct {
	Service *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /api/orders
func (ctl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	ident, _ := middleware.IdentityFrom(c)
	order, err := ctl.Service.Create(c.Request.Context(), ident, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, order)
}

// GET /api/orders/my-orders
func (ctl *OrderController) MyOrders(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	orders, err := ctl.Service.ListByUser(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, len(orders))
}

// GET /api/orders/:id
func (ctl *OrderController) Get(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	order, err := ctl.Service.Get(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// PUT /api/orders/:id/pay
func (ctl *OrderController) AttachPayment(c *gin.Context) {
	var req dto.AttachPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	ident, _ := middleware.IdentityFrom(c)
	order, err := ctl.Service.AttachPayment(c.Request.Context(), ident, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// POST /api/orders/:id/cancel (owner or admin)
func (ctl *OrderController) Cancel(c *gin.Context) {
	// The note is optional; an empty body is fine.
	var req dto.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	ident, _ := middleware.IdentityFrom(c)
	order, err := ctl.Service.Cancel(c.Request.Context(), ident, c.Param("id"), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// GET /api/orders (admin)
func (ctl *OrderController) ListAll(c *gin.Context) {
	orders, err := ctl.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, len(orders))
}

// PUT /api/orders/:id (admin), fulfillment status transition
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	ident, _ := middleware.IdentityFrom(c)
	order, err := ctl.Service.Transition(c.Request.Context(), ident, c.Param("id"), model.OrderStatus(req.Status), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// DELETE /api/orders/:id (admin)
func (ctl *OrderController) Delete(c *gin.Context) {
	if err := ctl.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "order deleted")
}
