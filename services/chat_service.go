package services

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MaximilianIsing/PathPal/config"
	"github.com/MaximilianIsing/PathPal/logger"
	"github.com/MaximilianIsing/PathPal/models"
)

// systemPrompt 固定的系统提示词，所有对话都以它开头
const systemPrompt = "You are PathPal, a friendly and knowledgeable college advisor. " +
	"You help high school students explore colleges, understand admissions, plan their " +
	"applications, and choose majors that fit their interests and goals. Give specific, " +
	"practical advice and keep answers concise and encouraging. When you are not sure " +
	"about a number, say it is approximate."

// chatCompleter 上游补全客户端需要实现的最小接口，测试中用假实现替换
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatError 携带应返回给调用方的HTTP状态码的错误
type ChatError struct {
	Status  int
	Message string
}

func (e *ChatError) Error() string {
	return e.Message
}

// ChatService 聊天代理：把用户消息和上下文转发给上游补全接口
type ChatService struct {
	cfg    *config.Config
	client chatCompleter
}

// NewChatService 创建聊天代理。未配置API密钥时不创建上游客户端，
// 后续每次调用都直接失败而不会发起远程请求。
func NewChatService(cfg *config.Config) *ChatService {
	s := &ChatService{cfg: cfg}
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("未配置OPENAI_API_KEY，聊天接口不可用")
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s
}

// Chat 转发一条用户消息。消息顺序：固定系统提示词、调用方透传的上下文、新消息。
// 采样参数固定取自配置，不做重试。
func (s *ChatService) Chat(ctx context.Context, message string, prior []models.ChatMessage) (*models.ChatResponse, error) {
	if s.cfg.OpenAI.APIKey == "" || s.client == nil {
		logger.Error("聊天请求被拒绝：未配置API密钥")
		return nil, &ChatError{
			Status:  http.StatusServiceUnavailable,
			Message: "chat service is not configured",
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(prior)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range prior {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.OpenAI.Model,
		Messages:    messages,
		Temperature: s.cfg.OpenAI.Temperature,
		MaxTokens:   s.cfg.OpenAI.MaxTokens,
	})
	if err != nil {
		return nil, relayError(err)
	}

	if len(resp.Choices) == 0 {
		logger.Error("上游响应中没有内容", "model", s.cfg.OpenAI.Model)
		return nil, &ChatError{
			Status:  http.StatusBadGateway,
			Message: "empty response from chat provider",
		}
	}

	logger.Info("聊天请求完成",
		"model", s.cfg.OpenAI.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &models.ChatResponse{
		Message: resp.Choices[0].Message.Content,
		Usage: models.ChatUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// relayError 把上游错误转换为带状态码的ChatError，
// 上游报告的状态码和错误文本原样透传给调用方
func relayError(err error) *ChatError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = "chat provider returned an error"
		}
		logger.Error("上游API返回错误", "status", status, "message", message)
		return &ChatError{Status: status, Message: message}
	}

	logger.Error("调用上游API失败", "error", err)
	return &ChatError{
		Status:  http.StatusBadGateway,
		Message: "failed to reach chat provider",
	}
}
