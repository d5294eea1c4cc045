package controllers

import (
	"net/http"
	"strconv"

	"jewelry-backend/logger"
	"jewelry-backend/middleware"
	"jewelry-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService  *services.OrderService
	reportService *services.ReportService
}

func NewOrderController(orderService *services.OrderService, reportService *services.ReportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		reportService: reportService,
	}
}

// CreateOrder handles order creation requests
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	req.DeviceToken = ""

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created", "order": order})
}

// CreateOrderOnMobile creates an order and sends a best-effort push
// notification to the supplied device token.
func (oc *OrderController) CreateOrderOnMobile(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created", "order": order})
}

// GetOrders returns all orders newest-first, optionally filtered by status
// and customer name.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	status := ctx.Query("status")
	customerName := ctx.Query("customerName")

	orders, err := oc.orderService.ListOrders(ctx.Request.Context(), status, customerName)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "totalOrders": len(orders), "orders": orders})
}

// GetOrderByID returns a specific order
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	order, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), orderID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// UpdateOrder applies payments and guarded status/description updates.
func (oc *OrderController) UpdateOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	var req services.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	order, svcErr := oc.orderService.UpdateOrder(ctx.Request.Context(), orderID, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated", "order": order})
}

type updateStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Description string `json:"description"`
}

// UpdateOrderStatus is the unconditional admin override.
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	order, svcErr := oc.orderService.OverrideStatus(ctx.Request.Context(), orderID, req.Status, req.Description)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	staffID, _ := middleware.GetStaffID(ctx)
	logger.Info(ctx, "Order status overridden",
		zap.String("order_id", orderID.String()),
		zap.String("status", req.Status),
		zap.String("staff_id", staffID))

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated", "order": order})
}

// DeleteOrder removes an order and its line items
func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	if svcErr := oc.orderService.DeleteOrder(ctx.Request.Context(), orderID); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	staffID, _ := middleware.GetStaffID(ctx)
	logger.Info(ctx, "Order deleted",
		zap.String("order_id", orderID.String()),
		zap.String("staff_id", staffID))

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}

// GetDailyProfit returns the profit/quantity report for the requested
// calendar window.
func (oc *OrderController) GetDailyProfit(ctx *gin.Context) {
	var params services.ReportParams
	var err error

	if params.Date, err = intQuery(ctx, "date"); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date parameter"})
		return
	}
	if params.Month, err = intQuery(ctx, "month"); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid month parameter"})
		return
	}
	if params.Year, err = intQuery(ctx, "year"); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid year parameter"})
		return
	}

	if raw := ctx.Query("storeID"); raw != "" {
		storeID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid storeID parameter"})
			return
		}
		params.StoreID = &storeID
	}

	report, svcErr := oc.reportService.DailyProfitAndQuantity(ctx.Request.Context(), params)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// intQuery parses an optional integer query parameter.
func intQuery(ctx *gin.Context, name string) (*int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
