package handler

import (
	appfulfillment "github.com/crossbuy/backend/internal/application/fulfillment"
	"github.com/crossbuy/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// FulfillmentHandler handles purchase, reception, delivery and receipt endpoints
type FulfillmentHandler struct {
	BaseHandler
	purchaseService  *appfulfillment.PurchaseService
	receptionService *appfulfillment.ReceptionService
	deliveryService  *appfulfillment.DeliveryService
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(
	purchaseService *appfulfillment.PurchaseService,
	receptionService *appfulfillment.ReceptionService,
	deliveryService *appfulfillment.DeliveryService,
) *FulfillmentHandler {
	return &FulfillmentHandler{
		purchaseService:  purchaseService,
		receptionService: receptionService,
		deliveryService:  deliveryService,
	}
}

// CreatePurchase handles POST /purchases
func (h *FulfillmentHandler) CreatePurchase(c *gin.Context) {
	var req appfulfillment.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// RefundPurchase handles POST /purchases/:id/refund
func (h *FulfillmentHandler) RefundPurchase(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase record ID")
		return
	}

	var req appfulfillment.RefundPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.purchaseService.Refund(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// DeletePurchase handles DELETE /purchases/:id
func (h *FulfillmentHandler) DeletePurchase(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase record ID")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListPurchasesByProduct handles GET /products/:id/purchases
func (h *FulfillmentHandler) ListPurchasesByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	records, err := h.purchaseService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// CreateReception handles POST /receptions
func (h *FulfillmentHandler) CreateReception(c *gin.Context) {
	var req appfulfillment.RecordReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.receptionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// DeleteReception handles DELETE /receptions/:id
func (h *FulfillmentHandler) DeleteReception(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reception record ID")
		return
	}

	if err := h.receptionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListReceptionsByProduct handles GET /products/:id/receptions
func (h *FulfillmentHandler) ListReceptionsByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	records, err := h.receptionService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// CreateDelivery handles POST /deliveries
func (h *FulfillmentHandler) CreateDelivery(c *gin.Context) {
	var req appfulfillment.RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.deliveryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// DeleteDelivery handles DELETE /deliveries/:id
func (h *FulfillmentHandler) DeleteDelivery(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery record ID")
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateReceipt handles POST /receipts
func (h *FulfillmentHandler) CreateReceipt(c *gin.Context) {
	var req appfulfillment.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	receipt, err := h.deliveryService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetReceipt handles GET /receipts/:id
func (h *FulfillmentHandler) GetReceipt(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.deliveryService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// AddReceiptPayment handles POST /receipts/:id/payments
func (h *FulfillmentHandler) AddReceiptPayment(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req appfulfillment.AddReceiptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	receipt, err := h.deliveryService.AddReceiptPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
