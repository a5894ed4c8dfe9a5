package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	ChapterService *service.ChapterService
}

func NewChapterController(chapterService *service.ChapterService) *ChapterController {
	return &ChapterController{ChapterService: chapterService}
}

// Create godoc
// @Summary Append a chapter to a module
// @Description Multipart form: title, an optional "contents" JSON field and
// @Description one file part per fileFieldKey. The chapter is placed after
// @Description the module's existing chapters.
// @Tags chapters
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Param   title formData string true "chapter title"
// @Param   contents formData string false "JSON content list"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules/{module_id}/chapters [post]
func (c *ChapterController) Create(ctx *gin.Context) {
	var req service.ChapterCreateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.CreateChapter(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("module_id")),
		req,
		multipartFiles(ctx),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// List godoc
// @Summary List a module's chapters in order
// @Tags chapters
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Chapter}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules/{module_id}/chapters [get]
func (c *ChapterController) List(ctx *gin.Context) {
	chapters, err := c.ChapterService.ListChapters(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("module_id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}
