package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Admin godoc
// @Summary Admin dashboard counters
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminDashboard}
// @Failure 403 {object} util.Response
// @Router /api/dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dashboard, err := c.DashboardService.AdminDashboard()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// Instructor godoc
// @Summary Instructor analytics
// @Description Course count and distinct enrolled students for the caller.
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.InstructorAnalytics}
// @Router /api/dashboard/instructor [get]
func (c *DashboardController) Instructor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	analytics, err := c.DashboardService.InstructorAnalytics(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
