package routes

import (
	"jewelry-backend/controllers"
	"jewelry-backend/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, oc *controllers.OrderController, odc *controllers.OrderDetailController) {
	orderRoutes := r.Group("/orders")

	// Report endpoint stays outside staff auth, matching the dashboard's
	// public polling use.
	orderRoutes.GET("/daily-profit", oc.GetDailyProfit)

	authed := orderRoutes.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.POST("", oc.CreateOrder)
	authed.POST("/mobile", oc.CreateOrderOnMobile)
	authed.GET("", oc.GetOrders)
	authed.GET("/:orderId", oc.GetOrderByID)
	authed.PUT("/:orderId", oc.UpdateOrder)
	authed.DELETE("/:orderId", oc.DeleteOrder)
	authed.PUT("/:orderId/update-status", oc.UpdateOrderStatus)

	detailRoutes := r.Group("/orderDetails")
	detailRoutes.Use(middleware.AuthMiddleware())
	detailRoutes.POST("", odc.ReplaceOrderLines)
	detailRoutes.DELETE("/:orderDetailId", odc.DeleteOrderDetail)
}
