package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/dailyshift-dev/shift-notify/backend/internal/mailer"
	"github.com/dailyshift-dev/shift-notify/backend/internal/ranking"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
	"github.com/redis/go-redis/v9"
)

// Selection 是候选人挑选流程：新班次创建后取一小批候选人，
// 让排序服务挑出最可能接受的几个，然后逐个发邀请邮件
// 这个流程不写文档库，文档的变更只发生在响应回调那边
type Selection struct {
	cfg         *config.Config
	store       store.Store
	ranker      ranking.Client
	mailer      mailer.Mailer
	redisClient *redis.Client // 可以为 nil，表示不做触发去重
}

func NewSelection(cfg *config.Config, st store.Store, ranker ranking.Client, m mailer.Mailer, redisClient *redis.Client) *Selection {
	return &Selection{
		cfg:         cfg,
		store:       st,
		ranker:      ranker,
		mailer:      m,
		redisClient: redisClient,
	}
}

// NotificationOutcome 单个候选人的通知结果
type NotificationOutcome struct {
	Index int    // 候选人在池子里的下标
	Email string
	Err   error
}

// Result 把流程里每一步的结果显式记下来，由触发入口统一记日志
type Result struct {
	ShiftID    string
	PoolSize   int
	Selected   []int    // 校验通过的下标，保持排序服务给出的顺序
	Skipped    []string // 非整数或越界而被跳过的元素
	RankingErr error    // 排序服务调用失败或回复解析失败
	Outcomes   []NotificationOutcome
}

// NotifiedCount 成功发出的通知数
func (r *Result) NotifiedCount() int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err == nil {
			n++
		}
	}
	return n
}

// OnShiftCreated 在班次文档创建后执行一次
// 只有文档库读取失败才会返回错误；排序服务的问题一律就地收场（fail-closed），
// 不通知任何人，也不把错误抛回给触发方
func (s *Selection) OnShiftCreated(ctx context.Context, event *domain.ShiftCreatedEvent) (*Result, error) {
	// 触发器可能带着空文档过来，按无操作处理，不算错误
	if event == nil || event.Shift == nil {
		slog.Warn("班次创建事件中没有文档数据")
		return &Result{}, nil
	}

	slog.Info("收到新班次", "shiftID", event.ID, "startTime", event.Shift.StartTime, "endTime", event.Shift.EndTime)

	result := &Result{ShiftID: event.ID}

	if !s.markProcessed(ctx, event.ID) {
		slog.Info("班次已经处理过，跳过", "shiftID", event.ID)
		return result, nil
	}

	/**********************************************
	 * 第一步：取候选人池
	 **********************************************/
	candidates, err := s.store.ListEmployees(ctx, s.cfg.Selection.CandidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("无法获取候选人池: %w", err)
	}
	result.PoolSize = len(candidates)
	if len(candidates) == 0 {
		slog.Warn("候选人池为空，不发送任何通知", "shiftID", event.ID)
		return result, nil
	}

	/**********************************************
	 * 第二步：调用排序服务（只调一次）
	 **********************************************/
	prompt, err := ranking.BuildPrompt(event.Shift, candidates, s.cfg.Selection.SelectCount)
	if err != nil {
		result.RankingErr = err
		slog.Error("无法构造排序提示词", "shiftID", event.ID, "error", err)
		return result, nil
	}

	raw, err := s.ranker.GenerateText(ctx, prompt)
	if err != nil {
		result.RankingErr = err
		slog.Error("排序服务调用失败，本次不发送任何通知", "shiftID", event.ID, "error", err)
		return result, nil
	}

	/**********************************************
	 * 第三步：校验排序结果
	 **********************************************/
	indices, skipped, err := ranking.ParseIndices(raw)
	if err != nil {
		result.RankingErr = err
		slog.Error("无法解析排序服务的回复，本次不发送任何通知", "shiftID", event.ID, "error", err)
		return result, nil
	}
	for _, value := range skipped {
		slog.Warn("排序结果中存在非整数元素，已跳过", "shiftID", event.ID, "value", value)
	}
	result.Skipped = append(result.Skipped, skipped...)

	seen := make(map[int]bool)
	for _, index := range indices {
		if index < 0 || index >= len(candidates) {
			slog.Warn("排序结果中的下标越界，已跳过", "shiftID", event.ID, "index", index, "poolSize", len(candidates))
			result.Skipped = append(result.Skipped, strconv.Itoa(index))
			continue
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		result.Selected = append(result.Selected, index)
	}

	/**********************************************
	 * 第四步：逐个发通知，彼此独立
	 **********************************************/
	for _, index := range result.Selected {
		candidate := candidates[index]
		outcome := NotificationOutcome{Index: index, Email: candidate.Profile.Email}
		// 单个候选人发送失败只记日志，不影响其他人
		if err := s.notify(ctx, event, candidate); err != nil {
			outcome.Err = err
			slog.Error("无法发送班次邀请", "shiftID", event.ID, "email", candidate.Profile.Email, "error", err)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// markProcessed 用 redis 的 SetNX 保证同一个班次只处理一次
// 返回 false 表示标记已存在，应当跳过
// 没配置 redis 时直接放行，交给派发器保证只送一次
func (s *Selection) markProcessed(ctx context.Context, shiftID string) bool {
	if s.redisClient == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	ok, err := s.redisClient.SetNX(ctx,
		fmt.Sprintf("processed_shift_%s", shiftID),
		time.Now().Unix(),
		time.Duration(s.cfg.Redis.DedupeExpiration)*time.Second,
	).Result()
	if err != nil {
		// 去重标记写不进去时宁可重复处理也不要丢事件
		slog.Warn("无法写入班次去重标记", "shiftID", shiftID, "error", err)
		return true
	}

	return ok
}

func (s *Selection) notify(ctx context.Context, event *domain.ShiftCreatedEvent, candidate *domain.Employee) error {
	data := domain.ShiftInviteMailData{
		FullName:    candidate.Profile.FullName,
		StartTime:   event.Shift.StartTime.Format("2006-01-02 15:04"),
		EndTime:     event.Shift.EndTime.Format("2006-01-02 15:04"),
		Description: event.Shift.Description,
		AcceptURL:   s.responseURL(event.ID, candidate.ID, domain.ShiftResponseAccept),
		DeclineURL:  s.responseURL(event.ID, candidate.ID, domain.ShiftResponseDecline),
	}

	return s.mailer.Send(ctx, &domain.MailMessage{
		Type: domain.MailTypeShiftInvite,
		To:   candidate.Profile.Email,
		Data: data,
	})
}

func (s *Selection) responseURL(shiftID string, userID string, response domain.ShiftResponse) string {
	query := url.Values{}
	query.Set("shift_id", shiftID)
	query.Set("user_id", userID)
	query.Set("response", string(response))

	return strings.TrimRight(s.cfg.Selection.CallbackBaseURL, "/") + "/shift-response?" + query.Encode()
}
