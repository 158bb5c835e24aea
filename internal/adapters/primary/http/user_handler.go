package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/ports"
)

// UserHandler couvre profil, follow, suggestions.
type UserHandler struct {
	identity    ports.IdentityService
	social      ports.SocialGraphService
	suggestions ports.SuggestionService
}

func NewUserHandler(
	identity ports.IdentityService,
	social ports.SocialGraphService,
	suggestions ports.SuggestionService,
) *UserHandler {
	return &UserHandler{identity: identity, social: social, suggestions: suggestions}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile/:username", h.getProfile)
	rg.POST("/follow/:id", h.toggleFollow)
	rg.GET("/suggested", h.getSuggested)
	rg.PATCH("/update", h.updateProfile)
}

func (h *UserHandler) getProfile(c *gin.Context) {
	user, err := h.identity.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUser(user))
}

func (h *UserHandler) toggleFollow(c *gin.Context) {
	state, err := h.social.ToggleFollow(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": string(state)})
}

func (h *UserHandler) getSuggested(c *gin.Context) {
	users, err := h.suggestions.SuggestUsers(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = mapUser(u)
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) updateProfile(c *gin.Context) {
	var req struct {
		FullName        *string `json:"fullName"`
		Email           *string `json:"email"`
		Username        *string `json:"username"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword *string `json:"currentPassword"`
		NewPassword     *string `json:"newPassword"`
		ProfileImg      *string `json:"profileImg"`
		CoverImg        *string `json:"coverImg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), ports.UpdateProfileCmd{
		UserID:          currentUserID(c),
		FullName:        req.FullName,
		Email:           req.Email,
		Username:        req.Username,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUser(user))
}
