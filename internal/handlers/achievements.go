package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/harmonynav-backend/internal/clients/redis"
	"github.com/yungbote/harmonynav-backend/internal/harmony"
)

type AchievementHandler struct {
	sessions redis.SessionStore
}

func NewAchievementHandler(sessions redis.SessionStore) *AchievementHandler {
	return &AchievementHandler{sessions: sessions}
}

func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	unlocked, err := h.sessions.UnlockedAchievements(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	type entry struct {
		ID       string `json:"id"`
		Label    string `json:"label"`
		Unlocked bool   `json:"unlocked"`
	}
	var out []entry
	for _, a := range harmony.DefaultAchievements() {
		out = append(out, entry{ID: a.ID, Label: a.Label, Unlocked: unlocked[a.ID]})
	}
	c.JSON(http.StatusOK, gin.H{"achievements": out})
}
