package models

// ChatMessage 对话中的一条消息，context原样透传给上游
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest POST /api/chat 请求体
type ChatRequest struct {
	Message string        `json:"message"`
	Context []ChatMessage `json:"context,omitempty"`
}

// ChatUsage 上游返回的token用量
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse POST /api/chat 成功响应
type ChatResponse struct {
	Message string    `json:"message"`
	Usage   ChatUsage `json:"usage"`
}
