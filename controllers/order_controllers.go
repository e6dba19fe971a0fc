package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adisyon-app/adisyon/services"
	"github.com/adisyon-app/adisyon/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type upsertItemsRequest struct {
	SessionID *uint                `json:"session_id" binding:"required"`
	Items     []services.ItemInput `json:"items" binding:"required"`
}

// UpsertItemsBulk -> replace the session's item set wholesale; stock is
// not adjusted on this path
func (oc *OrderController) UpsertItemsBulk(c *gin.Context) {
	var req upsertItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := oc.Orders.UpsertItemsBulk(*req.SessionID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order items updated", session)
}

// UpsertItemsIncremental -> reconcile the submitted lines against stored
// quantities and adjust product stock by the differences
func (oc *OrderController) UpsertItemsIncremental(c *gin.Context) {
	var req upsertItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := oc.Orders.UpsertItemsIncremental(*req.SessionID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order items updated", session)
}
