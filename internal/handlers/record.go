package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/requestdata"
	"github.com/yungbote/harmonynav-backend/internal/services"
)

type RecordHandler struct {
	recordService services.RecordService
}

func NewRecordHandler(recordService services.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (rh *RecordHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Date          string             `json:"date"`
		Mode          string             `json:"mode"`
		Weights       map[string]float64 `json:"weights"`
		DomainScores  map[string]float64 `json:"domain_scores"`
		ElementScores map[string]float64 `json:"element_scores"`
		GHappiness    int                `json:"g_happiness"`
		EventLog      string             `json:"event_log"`
		LogKey        string             `json:"log_key"`
		Consent       bool               `json:"consent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date"})
		return
	}
	out, err := rh.recordService.Submit(c.Request.Context(), services.SubmitRecordInput{
		UserID:        userID,
		Date:          date,
		Mode:          harmony.Mode(req.Mode),
		Weights:       req.Weights,
		DomainScores:  req.DomainScores,
		ElementScores: req.ElementScores,
		GHappiness:    req.GHappiness,
		EventLog:      req.EventLog,
		LogKey:        req.LogKey,
		Consent:       req.Consent,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (rh *RecordHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	records, err := rh.recordService.ListByUser(c.Request.Context(), userID, c.Query("log_key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (rh *RecordHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="harmony_records.csv"`)
	if err := rh.recordService.ExportCSV(c.Request.Context(), userID, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

func (rh *RecordHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := rh.recordService.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
