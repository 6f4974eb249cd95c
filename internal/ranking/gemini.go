package ranking

import (
	"context"
	"errors"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"google.golang.org/genai"
)

// Gemini 是 Client 的线上实现，走 Gemini API
type Gemini struct {
	cfg    *config.Config
	client *genai.Client
}

func NewGemini(ctx context.Context, cfg *config.Config) (*Gemini, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("没有配置 GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Gemini{
		cfg:    cfg,
		client: client,
	}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.Gemini.Timeout)*time.Second)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Gemini.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		// 要求模型输出 JSON，但即便如此回复也不一定可靠，解析时仍然要防御
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
