// Package es 提供了与 Elasticsearch 交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"qcmeta-go/internal/config"
	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/log"
)

var ESClient *elasticsearch.Client

// InitES 初始化 Elasticsearch 客户端并确保目录索引存在。
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists 检查目录索引是否存在，如果不存在则创建它。
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	defer res.Body.Close()

	// 200 说明索引已存在
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("检查索引 '%s' 是否存在时收到意外的状态码: %d", indexName, res.StatusCode)
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	// 目录条目都是英文的方法名/描述，使用 english 分词器；
	// indexed_at 与 model.LocalTime 的序列化格式保持一致
	mapping := `{
	  "settings": {
	    "number_of_shards": 1,
	    "number_of_replicas": 0
	  },
	  "mappings": {
	    "properties": {
	      "doc_id":      { "type": "keyword" },
	      "entity_type": { "type": "keyword" },
	      "entity_id":   { "type": "long" },
	      "keyword":     { "type": "text", "analyzer": "standard" },
	      "name":        { "type": "text", "analyzer": "english" },
	      "label":       { "type": "text", "analyzer": "standard" },
	      "description": { "type": "text", "analyzer": "english" },
	      "archived":    { "type": "boolean" },
	      "indexed_at":  { "type": "date", "format": "yyyy-MM-dd HH:mm:ss" }
	    }
	  }
	}`

	createRes, err := ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		log.Errorf("创建索引 '%s' 失败: %v", indexName, err)
		return err
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		return fmt.Errorf("创建索引 '%s' 返回错误: %s", indexName, createRes.String())
	}

	log.Infof("索引 '%s' 创建成功", indexName)
	return nil
}

// IndexCatalogDocument 将一个目录文档写入（或覆盖）索引。
func IndexCatalogDocument(ctx context.Context, indexName string, doc model.CatalogDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: doc.DocID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return fmt.Errorf("写入目录文档失败: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("写入目录文档 '%s' 返回错误: %s", doc.DocID, res.String())
	}
	return nil
}

// DeleteCatalogDocument 将一个目录文档从索引中移除。
// 文档不存在时视为成功（幂等删除）。
func DeleteCatalogDocument(ctx context.Context, indexName, docID string) error {
	req := esapi.DeleteRequest{
		Index:      indexName,
		DocumentID: docID,
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return fmt.Errorf("删除目录文档失败: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("删除目录文档 '%s' 返回错误: %s", docID, res.String())
	}
	return nil
}
