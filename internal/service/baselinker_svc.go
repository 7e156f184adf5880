package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== Baselinker 连接器 ====================

// BaselinkerService 把已终化的拍卖集推送到 Baselinker
// 接口是单入口 connector.php，方法名和参数走表单字段
type BaselinkerService struct {
	client   *resty.Client
	token    string
	auctions repository.AuctionRepository
}

// NewBaselinkerService 创建推送服务
func NewBaselinkerService(baseURL, token string, auctions repository.AuctionRepository) *BaselinkerService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &BaselinkerService{client: client, token: token, auctions: auctions}
}

type baselinkerResp struct {
	Status       string `json:"status"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// call 调用 Baselinker 方法，参数序列化成 JSON 塞进表单
func (s *BaselinkerService) call(ctx context.Context, method string, params interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return err
	}

	var result baselinkerResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"token":      s.token,
			"method":     method,
			"parameters": string(body),
		}).
		SetResult(&result).
		Post("/connector.php")
	if err != nil {
		return fmt.Errorf("baselinker %s: %w", method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("baselinker %s: HTTP %d", method, resp.StatusCode())
	}
	if result.Status != "SUCCESS" {
		return fmt.Errorf("baselinker %s: %s %s", method, result.ErrorCode, result.ErrorMessage)
	}
	return nil
}

// PushSet 逐条推送拍卖集的成员拍卖
// 只推已终化的拍卖；任何一条失败整体失败，由任务层记录重试
func (s *BaselinkerService) PushSet(ctx context.Context, set *model.AuctionSet) error {
	auctions, err := s.auctions.ListByIDs(ctx, set.AuctionIDs)
	if err != nil {
		return err
	}

	for _, a := range auctions {
		if a.Status != model.AuctionStatusFinalized {
			return fmt.Errorf("拍卖 %d 未终化，不能推送", a.ID)
		}
		params := map[string]interface{}{
			"inventory_id": set.ID,
			"product_id":   a.ID,
			"text_fields": map[string]interface{}{
				"name":        a.Name,
				"description": a.Description,
			},
			"prices":   map[string]float64{"pln": a.PricePLN, "eur": a.PriceEuro},
			"stock":    a.Amount,
			"category": a.Category,
		}
		if err := s.call(ctx, "addInventoryProduct", params); err != nil {
			return err
		}
	}
	return nil
}
