package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GianSanchez-dev/hooping-week/internal/api"
	"github.com/GianSanchez-dev/hooping-week/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateTeam godoc
// @Summary      Create team
// @Description  Creates a team owned by the authenticated user.
// @Tags         teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTeamRequest  true  "Team data"
// @Success      201      {object}  Team
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /teams [post]
func (h *Handler) CreateTeam(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	t, err := h.repo.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ListTeams godoc
// @Summary      List own teams
// @Description  Returns the authenticated user's teams with their rosters.
// @Tags         teams
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Team
// @Failure      401  {object}  api.ErrorResponse
// @Router       /teams [get]
func (h *Handler) ListTeams(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teams, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// AddPlayer godoc
// @Summary      Add player to roster
// @Tags         teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        teamID   path      int               true  "Team ID"
// @Param        request  body      AddPlayerRequest  true  "Player data"
// @Success      201      {object}  Player
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /teams/{teamID}/players [post]
func (h *Handler) AddPlayer(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := strconv.ParseInt(c.Param("teamID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	t, err := h.repo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		return
	}

	if t.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only manage own teams"})
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	p, err := h.repo.AddPlayer(c.Request.Context(), teamID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add player"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// DeletePlayer godoc
// @Summary      Remove player from roster
// @Tags         teams
// @Security     BearerAuth
// @Produce      json
// @Param        playerID  path      int  true  "Player ID"
// @Success      200       {object}  api.MessageResponse
// @Failure      403       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /teams/players/{playerID} [delete]
func (h *Handler) DeletePlayer(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	playerID, err := strconv.ParseInt(c.Param("playerID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	p, err := h.repo.GetPlayer(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch player"})
		return
	}

	t, err := h.repo.GetByID(c.Request.Context(), p.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		return
	}
	if t.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only manage own teams"})
		return
	}

	if err := h.repo.DeletePlayer(c.Request.Context(), playerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete player"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player removed successfully"})
}
