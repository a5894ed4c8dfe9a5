package controller

import (
	"mime/multipart"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func multipartFiles(ctx *gin.Context) map[string][]*multipart.FileHeader {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File
}

// Create godoc
// @Summary Create a course with its full module tree
// @Description Multipart form: title, description, a "modules" JSON field
// @Description describing modules/chapters/contents, an optional cover_image
// @Description part, and one file part per fileFieldKey referenced by a
// @Description content item.
// @Tags courses
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   title formData string true "course title"
// @Param   description formData string false "course description"
// @Param   modules formData string false "JSON module tree"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseCreateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), claims.UserID, req, multipartFiles(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// List godoc
// @Summary List the course catalog
// @Description Public. With a valid token each course carries is_enrolled.
// @Tags courses
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	courses, err := c.CourseService.ListCourses(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary Course detail with nested modules, chapters and contents
// @Tags courses
// @Produce  json
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	course, err := c.CourseService.GetCourse(util.MustParseUint(ctx.Param("id")), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// MyCourses godoc
// @Summary Courses owned by the calling instructor
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/my_courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.MyCourses(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// InProgress godoc
// @Summary Courses the caller is enrolled in and has not finished
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/in_progress [get]
func (c *CourseController) InProgress(ctx *gin.Context) {
	c.byStatus(ctx, model.EnrollmentInProgress)
}

// Completed godoc
// @Summary Courses the caller has completed
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/completed [get]
func (c *CourseController) Completed(ctx *gin.Context) {
	c.byStatus(ctx, model.EnrollmentCompleted)
}

func (c *CourseController) byStatus(ctx *gin.Context, status model.EnrollmentStatus) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.CoursesByEnrollmentStatus(claims.UserID, status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Update godoc
// @Summary Update course metadata
// @Description Flat update of title/description/cover. Owner or admin only.
// @Tags courses
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseUpdateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id")), req, multipartFiles(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course and everything under it
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
