package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/ports"
)

// PostHandler couvre le cycle de vie des posts, les feeds et l'engagement.
type PostHandler struct {
	posts      ports.PostService
	engagement ports.EngagementService
	feeds      ports.FeedService
}

func NewPostHandler(
	posts ports.PostService,
	engagement ports.EngagementService,
	feeds ports.FeedService,
) *PostHandler {
	return &PostHandler{posts: posts, engagement: engagement, feeds: feeds}
}

func (h *PostHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/all", h.globalFeed)
	rg.GET("/following", h.followingFeed)
	rg.GET("/user/:username", h.userFeed)
	rg.GET("/likes/:id", h.likedFeed)
	rg.POST("/create", h.createPost)
	rg.DELETE("/:id", h.deletePost)
	rg.POST("/like/:id", h.toggleLike)
	rg.POST("/comment/:id", h.addComment)
}

func (h *PostHandler) globalFeed(c *gin.Context) {
	feed, err := h.feeds.GlobalFeed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapFeed(feed))
}

func (h *PostHandler) followingFeed(c *gin.Context) {
	feed, err := h.feeds.FollowingFeed(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapFeed(feed))
}

func (h *PostHandler) userFeed(c *gin.Context) {
	feed, err := h.feeds.UserFeed(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapFeed(feed))
}

func (h *PostHandler) likedFeed(c *gin.Context) {
	feed, err := h.feeds.LikedFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapFeed(feed))
}

func (h *PostHandler) createPost(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
		Img  string `json:"img"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), currentUserID(c), req.Text, req.Img)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapPost(post))
}

func (h *PostHandler) deletePost(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

func (h *PostHandler) toggleLike(c *gin.Context) {
	likes, err := h.engagement.ToggleLike(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(likes))
}

func (h *PostHandler) addComment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.engagement.AddComment(c.Request.Context(), currentUserID(c), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPost(post))
}
