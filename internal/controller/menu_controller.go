package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	MenuService *service.MenuService
}

func NewMenuController(menuService *service.MenuService) *MenuController {
	return &MenuController{MenuService: menuService}
}

type wishlistRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// AddToWishlist godoc
// @Summary Add a course to the caller's wishlist
// @Tags wishlist
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body wishlistRequest true "course"
// @Success 200 {object} util.Response{data=model.Wishlist}
// @Failure 404 {object} util.Response
// @Router /api/wishlist [post]
func (c *MenuController) AddToWishlist(ctx *gin.Context) {
	var req wishlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	item, err := c.MenuService.AddToWishlist(claims.UserID, req.CourseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// Wishlist godoc
// @Summary The caller's wishlist
// @Tags wishlist
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Wishlist}
// @Router /api/wishlist [get]
func (c *MenuController) Wishlist(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	items, err := c.MenuService.Wishlist(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// RemoveFromWishlist godoc
// @Summary Remove a course from the caller's wishlist
// @Tags wishlist
// @Produce  json
// @Security BearerAuth
// @Param   course_id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/wishlist/{course_id} [delete]
func (c *MenuController) RemoveFromWishlist(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.MenuService.RemoveFromWishlist(claims.UserID, util.MustParseUint(ctx.Param("course_id"))); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Notifications godoc
// @Summary The caller's notifications, newest first
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /api/notifications [get]
func (c *MenuController) Notifications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	notifications, err := c.MenuService.Notifications(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "notification id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notifications/{id}/read [post]
func (c *MenuController) MarkNotificationRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.MenuService.MarkNotificationRead(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// HelpTopics godoc
// @Summary List help topics
// @Tags help
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.HelpTopic}
// @Router /api/help [get]
func (c *MenuController) HelpTopics(ctx *gin.Context) {
	topics, err := c.MenuService.HelpTopics()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}
