package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
)

// Client 是排序服务的接口：一段提示词进去，一段文本出来
// 模型的回复不可信，调用方要用 ParseIndices 做防御性解析
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt 把班次信息和完整候选人列表嵌进一条指令里
// 要求模型只回复一个 JSON 数组，里面是 selectCount 个从 0 开始的下标
func BuildPrompt(shift *domain.Shift, candidates []*domain.Employee, selectCount int) (string, error) {
	candidateJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("无法序列化候选人列表: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a shift staffing assistant. A new shift has just been posted:\n")
	fmt.Fprintf(&b, "- starts: %s\n", shift.StartTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- ends: %s\n", shift.EndTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- description: %s\n\n", shift.Description)
	fmt.Fprintf(&b, "Here is the list of candidate employees, in order (JSON array):\n%s\n\n", candidateJSON)
	fmt.Fprintf(&b, "Pick the %d candidates most likely to accept this shift, "+
		"considering their savings goals, recent pay advances, acceptance ratio, "+
		"hours worked this week and distance from the location.\n", selectCount)
	fmt.Fprintf(&b, "Respond with ONLY a JSON array of exactly %d zero-based integer indices "+
		"into the candidate list, ordered from most to least likely to accept. "+
		"No prose, no markdown, no explanation.", selectCount)

	return b.String(), nil
}

// ParseIndices 从模型的回复里解析下标数组
// 模型有时会带上代码块或者一两句废话，这里只取最外层的 [...] 部分
// 非整数的元素放进 skipped 返回，由调用方记日志，不会让整次解析失败
// 找不到能解析的 JSON 数组时返回错误，调用方应当就此终止（宁缺毋滥）
func ParseIndices(raw string) (indices []int, skipped []string, err error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, nil, fmt.Errorf("回复中找不到 JSON 数组: %q", raw)
	}

	var elements []any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &elements); err != nil {
		return nil, nil, fmt.Errorf("无法解析回复中的 JSON 数组: %w", err)
	}

	for _, element := range elements {
		number, ok := element.(float64)
		if !ok || number != math.Trunc(number) {
			skipped = append(skipped, fmt.Sprintf("%v", element))
			continue
		}
		indices = append(indices, int(number))
	}

	return indices, skipped, nil
}
