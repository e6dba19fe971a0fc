package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adisyon-app/adisyon/services"
	"github.com/adisyon-app/adisyon/utils"
)

type SessionController struct {
	Sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

// OpenTable -> opens the table at (region, ordinal); idempotent while the
// session stays open
func (sc *SessionController) OpenTable(c *gin.Context) {
	var req struct {
		RegionID    *uint `json:"region_id" binding:"required"`
		TableNumber *int  `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.OpenTable(*req.RegionID, *req.TableNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table opened", session)
}

// CancelTable -> cancels an open session and restocks its items
func (sc *SessionController) CancelTable(c *gin.Context) {
	sessionID, ok := sessionIDFromBody(c)
	if !ok {
		return
	}

	session, err := sc.Sessions.CancelTable(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table canceled", session)
}

// PayTable -> pays an open session in full
func (sc *SessionController) PayTable(c *gin.Context) {
	var req struct {
		SessionID     *uint  `json:"session_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.PayTable(*req.SessionID, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table paid", session)
}

// PartialPayment -> records a payment; the response session is null while
// the cumulative payments stay below the total
func (sc *SessionController) PartialPayment(c *gin.Context) {
	var req struct {
		SessionID *uint    `json:"session_id" binding:"required"`
		Method    string   `json:"method" binding:"required"`
		Amount    *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("amount must be positive"))
		return
	}

	payment, session, err := sc.Sessions.PartialPayment(*req.SessionID, req.Method, *req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment recorded", gin.H{
		"payment": payment,
		"session": session,
	})
}

// CloseTable -> archives a session
func (sc *SessionController) CloseTable(c *gin.Context) {
	sessionID, ok := sessionIDFromBody(c)
	if !ok {
		return
	}

	session, err := sc.Sessions.CloseTable(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table closed", session)
}

// TransferTable -> moves a session to another (free) table
func (sc *SessionController) TransferTable(c *gin.Context) {
	var req struct {
		SessionID  *uint `json:"session_id" binding:"required"`
		NewTableID *uint `json:"new_table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.TransferTable(*req.SessionID, *req.NewTableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table transferred", session)
}

// GetOpenSession -> the open session at (region, ordinal), null if the
// table is empty
func (sc *SessionController) GetOpenSession(c *gin.Context) {
	regionID, err := strconv.ParseUint(c.Query("regionId"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("regionId must be numeric"))
		return
	}
	tableNumber, err := strconv.Atoi(c.Query("tableNumber"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("tableNumber must be numeric"))
		return
	}

	session, err := sc.Sessions.GetOpenSession(uint(regionID), tableNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open session", session)
}

// GetSessionItems -> current order lines of a session
func (sc *SessionController) GetSessionItems(c *gin.Context) {
	sessionID, ok := sessionIDFromParam(c)
	if !ok {
		return
	}

	items, err := sc.Sessions.GetSessionItems(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session items", items)
}

// GetSessionDetails -> session with items and payments
func (sc *SessionController) GetSessionDetails(c *gin.Context) {
	sessionID, ok := sessionIDFromParam(c)
	if !ok {
		return
	}

	session, err := sc.Sessions.GetSessionDetails(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// GetCanceledSessions -> canceled sessions, newest first
func (sc *SessionController) GetCanceledSessions(c *gin.Context) {
	sessions, err := sc.Sessions.ListCanceledSessions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canceled sessions", sessions)
}

// GetPaidSessions -> paid sessions, newest first
func (sc *SessionController) GetPaidSessions(c *gin.Context) {
	sessions, err := sc.Sessions.ListPaidSessions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Paid sessions", sessions)
}

func sessionIDFromBody(c *gin.Context) (uint, bool) {
	var req struct {
		SessionID *uint `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return *req.SessionID, true
}

func sessionIDFromParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("session_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("session_id must be numeric"))
		return 0, false
	}
	return uint(id), true
}
