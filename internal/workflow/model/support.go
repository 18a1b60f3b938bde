package model

// TriageInput 工单分诊工作流输入
type TriageInput struct {
	Provider string

	Subject string
	Body    string

	// Knowledge 平台知识库全文，分诊链整体注入系统提示
	Knowledge string

	Temperature *float32
}

// AutopilotInput 自动回复工作流输入
type AutopilotInput struct {
	Provider string

	Subject string

	// History 近期对话轮次，按时间升序
	History []Turn

	Knowledge string

	// AdminBusy 为真时回复需解释人工客服暂时繁忙
	AdminBusy bool

	Temperature *float32
}
