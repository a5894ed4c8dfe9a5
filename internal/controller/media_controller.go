package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// UploadVideo godoc
// @Summary Upload a video
// @Description Validates the file, probes duration and dimensions, stores
// @Description it on the configured backend and returns the URL.
// @Tags media
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "video file"
// @Success 201 {object} util.Response{data=service.VideoUploadResult}
// @Failure 400 {object} util.Response
// @Router /api/upload/video [post]
func (c *MediaController) UploadVideo(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file part")
		return
	}

	result, err := c.MediaService.UploadVideo(ctx.Request.Context(), fh)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
