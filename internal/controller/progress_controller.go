package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type progressUpdateRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// Update godoc
// @Summary Set the caller's progress on a module
// @Description Upserts the (user, module) progress row. 100 on the last
// @Description outstanding module completes the enrollment.
// @Tags progress
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Param   body body progressUpdateRequest true "progress 0-100"
// @Success 200 {object} util.Response{data=model.ModuleProgress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules/{module_id}/progress [patch]
func (c *ProgressController) Update(ctx *gin.Context) {
	var req progressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "progress must be an integer")
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.UpsertProgress(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("module_id")),
		*req.Progress,
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// List godoc
// @Summary List progress rows
// @Description Admins see every row, everyone else sees their own.
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ModuleProgress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	rows, err := c.ProgressService.ListProgress(claims.UserID, claims.Role)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
