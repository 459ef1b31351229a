// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// ExperimentHandler 负责处理实验记录及其附件的 API 请求。
type ExperimentHandler struct {
	experimentService service.ExperimentService
}

// NewExperimentHandler 创建一个新的 ExperimentHandler 实例。
func NewExperimentHandler(experimentService service.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{experimentService: experimentService}
}

// Create 处理创建实验记录的请求。
func (h *ExperimentHandler) Create(c *gin.Context) {
	var input service.ExperimentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateExperiment: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	experiment, err := h.experimentService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, experiment)
}

// Update 处理更新实验记录的请求。
func (h *ExperimentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.ExperimentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	experiment, err := h.experimentService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, experiment)
}

// Get 返回单条实验记录的详情，递归内嵌分子和完整方法。
func (h *ExperimentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	experiment, err := h.experimentService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, experiment)
}

// List 分页返回实验记录列表。
// 支持 moleculeId 和 fullMethodId 查询参数做关联过滤。
func (h *ExperimentHandler) List(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)

	if moleculeID, err := strconv.ParseUint(c.Query("moleculeId"), 10, 32); err == nil {
		experiments, err := h.experimentService.ListByMolecule(uint(moleculeID), includeArchived)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, experiments)
		return
	}
	if fullMethodID, err := strconv.ParseUint(c.Query("fullMethodId"), 10, 32); err == nil {
		experiments, err := h.experimentService.ListByFullMethod(uint(fullMethodID), includeArchived)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, experiments)
		return
	}

	experiments, total, err := h.experimentService.List(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, experiments, total, page, pageSize)
}

// Records 返回供下拉列表使用的实验投影。
func (h *ExperimentHandler) Records(c *gin.Context) {
	records, err := h.experimentService.Records()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// Archive 归档一条实验记录。
func (h *ExperimentHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.experimentService.Archive(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// Restore 取消一条实验记录的归档。
func (h *ExperimentHandler) Restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.experimentService.Restore(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// UploadAttachment 处理计算输出文件的上传请求（multipart 表单）。
func (h *ExperimentHandler) UploadAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "缺少 file 表单字段"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error("UploadAttachment: failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "读取上传文件失败"})
		return
	}
	defer file.Close()

	var uploadedBy uint
	if user, exists := c.Get("user"); exists {
		if u, ok := user.(*model.User); ok {
			uploadedBy = u.ID
		}
	}

	attachment, err := h.experimentService.UploadAttachment(
		c.Request.Context(),
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		uploadedBy,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, attachment)
}

// ListAttachments 返回一条实验记录下的全部附件。
func (h *ExperimentHandler) ListAttachments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	attachments, err := h.experimentService.ListAttachments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, attachments)
}

// DownloadAttachment 返回附件的预签名下载链接。
func (h *ExperimentHandler) DownloadAttachment(c *gin.Context) {
	attachmentID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 attachmentId 参数"})
		return
	}
	url, err := h.experimentService.AttachmentDownloadURL(uint(attachmentID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"url": url})
}

// DeleteAttachment 删除一个附件。
func (h *ExperimentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 attachmentId 参数"})
		return
	}
	if err := h.experimentService.DeleteAttachment(c.Request.Context(), uint(attachmentID)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
