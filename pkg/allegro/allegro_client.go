package allegro

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL Allegro 开放平台地址
const DefaultBaseURL = "https://api.allegro.pl"

// Client Allegro API 客户端
// 只封装本系统用到的只读接口：类目参数、类目查询、类目匹配
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端
// token 为空时仍可构造（测试场景），请求会被 Allegro 拒绝
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20 * time.Second). // 类目树较大，给 20s
		SetRetryCount(3).
		SetHeader("Accept", "application/vnd.allegro.public.v1+json").
		SetHeader("User-Agent", "SellThatSheet-Go/1.0")

	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{http: client}
}

// FetchCategoryFields 拉取指定类目的参数定义（保持 Allegro 返回顺序）
func (c *Client) FetchCategoryFields(ctx context.Context, categoryID int64) ([]CategoryField, error) {
	var result CategoryParametersResp

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/sale/categories/%d/parameters", categoryID))
	if err != nil {
		return nil, fmt.Errorf("allegro 请求失败: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("allegro 返回错误 [%d]: %s", resp.StatusCode(), resp.String())
	}

	return result.Parameters, nil
}

// GetCategoryByID 查询类目
func (c *Client) GetCategoryByID(ctx context.Context, categoryID int64) (*Category, error) {
	var result Category

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/sale/categories/%d", categoryID))
	if err != nil {
		return nil, fmt.Errorf("allegro 请求失败: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("allegro 返回错误 [%d]: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}

// MatchCategory 按商品名匹配类目
func (c *Client) MatchCategory(ctx context.Context, productName string) ([]Category, error) {
	if len(productName) < 5 {
		// 太短的名称没有匹配意义，直接返回空
		return []Category{}, nil
	}

	var result MatchCategoriesResp

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetQueryParam("name", productName).
		Get("/sale/matching-categories")
	if err != nil {
		return nil, fmt.Errorf("allegro 请求失败: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("allegro 返回错误 [%d]: %s", resp.StatusCode(), resp.String())
	}

	return result.MatchingCategories, nil
}
