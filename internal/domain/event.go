package domain

// ShiftCreatedEvent 是文档创建触发器的载荷
// 外部派发器（例如 Eventarc 的推送）把新文档和它的 ID 一起发过来
// Shift 为 nil 表示事件中没有文档数据，按无操作处理
type ShiftCreatedEvent struct {
	ID    string `json:"id"`
	Shift *Shift `json:"shift"`
}
