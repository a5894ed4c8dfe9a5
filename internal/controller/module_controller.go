package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// List godoc
// @Summary List a course's modules in order
// @Description A student calling this is enrolled automatically.
// @Tags modules
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	modules, err := c.ModuleService.ListModules(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary Module detail with chapters and contents
// @Tags modules
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules/{module_id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	module, err := c.ModuleService.GetModule(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("module_id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}
