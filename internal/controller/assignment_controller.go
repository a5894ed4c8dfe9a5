package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Create godoc
// @Summary Create an assignment under a module
// @Tags assignments
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Param   title formData string true "assignment title"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/modules/{module_id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req service.AssignmentCreateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.CreateAssignment(
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
	util.Created(ctx, assignment)
}

// List godoc
// @Summary List a module's assignments
// @Tags assignments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Param   module_id path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{id}/modules/{module_id}/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	assignments, err := c.AssignmentService.ListAssignments(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("module_id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Submit godoc
// @Summary Submit work for an assignment
// @Description The submission belongs to the caller; resubmitting creates
// @Description a new row.
// @Tags submissions
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/submissions [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	var req service.SubmissionCreateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	submission, err := c.AssignmentService.CreateSubmission(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		claims.UserID,
		req,
		multipartFiles(ctx),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

// Submissions godoc
// @Summary List an assignment's submissions
// @Tags submissions
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /api/assignments/{id}/submissions [get]
func (c *AssignmentController) Submissions(ctx *gin.Context) {
	submissions, err := c.AssignmentService.ListSubmissions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// MySubmissions godoc
// @Summary The caller's submissions across assignments
// @Tags submissions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /api/submissions/my_submissions [get]
func (c *AssignmentController) MySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.AssignmentService.MySubmissions(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

type gradeRequest struct {
	Grade *int `json:"grade" binding:"required"`
}

// Grade godoc
// @Summary Grade a submission
// @Description Only the instructor owning the course (or an admin) may
// @Description grade. The grade must be within 0..max_score.
// @Tags submissions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "submission id"
// @Param   body body gradeRequest true "grade"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/submissions/{id}/grade [post]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	var req gradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "grade must be an integer")
		return
	}

	claims := util.GetUserFromContext(ctx)
	submission, err := c.AssignmentService.GradeSubmission(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id")), *req.Grade)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
