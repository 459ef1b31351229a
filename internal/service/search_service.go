// Package service 提供了搜索相关的业务逻辑。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/log"
)

// SearchService 接口定义了目录全文检索操作。
type SearchService interface {
	Search(ctx context.Context, query string, entityTypes []string, topK int) ([]model.SearchResponseDTO, error)
}

type searchService struct {
	esClient  *elasticsearch.Client
	indexName string
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(esClient *elasticsearch.Client, indexName string) SearchService {
	return &searchService{
		esClient:  esClient,
		indexName: indexName,
	}
}

// Search 在目录索引上执行全文检索。
// entityTypes 非空时只在给定的实体族内检索；已归档的条目不会出现在结果中。
func (s *searchService) Search(ctx context.Context, query string, entityTypes []string, topK int) ([]model.SearchResponseDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: 查询不能为空", ErrInvalidInput)
	}
	if topK < 1 || topK > 100 {
		topK = 20
	}
	for _, entityType := range entityTypes {
		if !isKnownEntityType(entityType) {
			return nil, fmt.Errorf("%w: 未知的实体类型 '%s'", ErrInvalidInput, entityType)
		}
	}
	log.Infof("[SearchService] 执行目录搜索, query: '%s', types: %v, topK: %d", query, entityTypes, topK)

	// keyword 权重最高：用户多数时候输入的是 "B3LYP" 这类短标识
	filters := []map[string]interface{}{
		{"term": map[string]interface{}{"archived": false}},
	}
	if len(entityTypes) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"entity_type": entityTypes},
		})
	}
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"keyword^3", "name^2", "label^2", "description"},
					},
				},
				"filter": filters,
			},
		},
		"size": topK,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.indexName),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("搜索请求失败: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Errorf("[SearchService] Elasticsearch 返回错误: %s", string(body))
		return nil, fmt.Errorf("搜索返回错误状态: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64               `json:"_score"`
				Source model.CatalogDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("解析搜索响应失败: %w", err)
	}

	results := make([]model.SearchResponseDTO, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, model.SearchResponseDTO{
			EntityType:  hit.Source.EntityType,
			EntityID:    hit.Source.EntityID,
			Keyword:     hit.Source.Keyword,
			Name:        hit.Source.Name,
			Label:       hit.Source.Label,
			Description: hit.Source.Description,
			Score:       hit.Score,
		})
	}
	log.Infof("[SearchService] 搜索完成, 命中 %d 条", len(results))
	return results, nil
}

func isKnownEntityType(entityType string) bool {
	for _, known := range model.AllEntityTypes {
		if entityType == known {
			return true
		}
	}
	return false
}
