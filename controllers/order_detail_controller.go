package controllers

import (
	"net/http"

	"jewelry-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderDetailController struct {
	orderService *services.OrderService
}

func NewOrderDetailController(orderService *services.OrderService) *OrderDetailController {
	return &OrderDetailController{orderService: orderService}
}

type replaceOrderLinesRequest struct {
	OrderID  uuid.UUID                 `json:"orderID" binding:"required"`
	Products []services.OrderLineInput `json:"products" binding:"required,dive"`
}

// ReplaceOrderLines replaces the full line-item set of a pending order.
func (odc *OrderDetailController) ReplaceOrderLines(ctx *gin.Context) {
	var req replaceOrderLinesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	order, err := odc.orderService.ReplaceOrderLines(ctx.Request.Context(), req.OrderID, req.Products)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order details replaced", "order": order})
}

// DeleteOrderDetail removes one line item and recomputes the parent order's
// totals.
func (odc *OrderDetailController) DeleteOrderDetail(ctx *gin.Context) {
	detailID, err := uuid.Parse(ctx.Param("orderDetailId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order detail ID format"})
		return
	}

	if svcErr := odc.orderService.DeleteOrderLine(ctx.Request.Context(), detailID); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order detail deleted"})
}
