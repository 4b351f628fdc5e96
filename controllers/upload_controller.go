package controllers

import (
	"net/http"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	images        services.ImageStore
	defaultFolder string
}

func NewUploadController(images services.ImageStore, defaultFolder string) *UploadController {
	return &UploadController{images: images, defaultFolder: defaultFolder}
}

// UploadImage nhận file multipart "file" hoặc JSON {"image": "data:image/..."}
// và trả về URL đã host.
func (u *UploadController) UploadImage(c *gin.Context) {
	if u.images == nil {
		response.Error(c, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	folder := u.defaultFolder
	if fileHeader, err := c.FormFile("file"); err == nil {
		if f := c.PostForm("folder"); f != "" {
			folder = f
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "Không thể đọc file")
			return
		}
		defer file.Close()

		url, err := u.images.Upload(c.Request.Context(), file, folder)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Created(c, dto.UploadResponse{URL: url})
		return
	}

	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if !services.IsImagePayload(req.Image) {
		response.BadRequest(c, "Ảnh phải là data URI dạng data:image/...;base64,")
		return
	}
	if req.Folder != "" {
		folder = req.Folder
	}
	url, err := services.ResolveImage(c.Request.Context(), u.images, req.Image, folder)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.UploadResponse{URL: url})
}
