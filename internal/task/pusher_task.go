package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== 接口定义 ====================

// SetPusher 拍卖集推送接口（Baselinker）
type SetPusher interface {
	PushSet(ctx context.Context, set *model.AuctionSet) error
}

// ==================== PusherTask 推送任务 ====================

// PusherTask 定时扫描待推送的拍卖集并推送到 Baselinker
// 推送串行执行：Baselinker 对单 token 有速率限制，并发推只会换来 429
type PusherTask struct {
	setRepo repository.AuctionSetRepository
	pusher  SetPusher
	cron    *cron.Cron

	batchSize int
}

// NewPusherTask 创建推送任务
func NewPusherTask(setRepo repository.AuctionSetRepository, pusher SetPusher) *PusherTask {
	return &PusherTask{
		setRepo:   setRepo,
		pusher:    pusher,
		cron:      cron.New(cron.WithSeconds()),
		batchSize: 10, // 单轮最多处理的拍卖集数
	}
}

// Start 启动定时任务
func (t *PusherTask) Start() {
	// 定时策略：每分钟执行
	_, err := t.cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.execute(ctx)
	})

	if err != nil {
		log.Fatalf("[PusherTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[PusherTask] 拍卖集推送任务已启动 (每分钟检查)")
}

// Stop 停止任务
func (t *PusherTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[PusherTask] 已停止")
}

// execute 执行一次任务
func (t *PusherTask) execute(ctx context.Context) {
	sets, err := t.setRepo.FindPendingPush(ctx, t.batchSize)
	if err != nil {
		log.Printf("[PusherTask] 查询失败: %v", err)
		return
	}

	if len(sets) == 0 {
		return
	}

	log.Printf("[PusherTask] 发现 %d 个待推送拍卖集", len(sets))

	for _, set := range sets {
		select {
		case <-ctx.Done():
			log.Println("[PusherTask] 任务超时停止")
			return
		default:
		}

		if err := t.pusher.PushSet(ctx, set); err != nil {
			log.Printf("[PusherTask] 拍卖集 %d 推送失败: %v", set.ID, err)
			if markErr := t.setRepo.MarkPushFailed(ctx, set.ID, err.Error()); markErr != nil {
				log.Printf("[PusherTask] 拍卖集 %d 标记失败状态出错: %v", set.ID, markErr)
			}
			continue
		}

		if err := t.setRepo.MarkPushed(ctx, set.ID); err != nil {
			log.Printf("[PusherTask] 拍卖集 %d 标记完成状态出错: %v", set.ID, err)
			continue
		}
		log.Printf("[PusherTask] 拍卖集 %d 推送成功", set.ID)
	}
}
