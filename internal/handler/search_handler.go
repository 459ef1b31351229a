// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// SearchHandler 负责处理目录搜索的 API 请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 在目录索引上执行全文检索。
// q 是查询串；types 是逗号分隔的实体类型过滤；topK 限制返回条数。
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	topK, _ := strconv.Atoi(c.DefaultQuery("topK", "20"))

	var entityTypes []string
	if raw := c.Query("types"); raw != "" {
		for _, entityType := range strings.Split(raw, ",") {
			if entityType = strings.TrimSpace(entityType); entityType != "" {
				entityTypes = append(entityTypes, entityType)
			}
		}
	}

	results, err := h.searchService.Search(c.Request.Context(), query, entityTypes, topK)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Infof("Search: query '%s' returned %d results", query, len(results))
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"results": results,
			"total":   len(results),
		},
	})
}
