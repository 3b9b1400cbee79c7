package llm

import (
	"context"
	"net/http"

	"github.com/sandevgo/calbot/internal/core"
)

const openRouterBaseURL = "https://openrouter.ai/api"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return newOpenRouter(openRouterBaseURL, apiKey, model)
}

func newOpenRouter(baseURL, apiKey, model string) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: newBearer(baseURL, apiKey, model, map[string]string{
			"HTTP-Referer": core.CalRepositoryURL,
			"X-Title":      core.CalName,
		}),
	}
}

// Models returns the OpenRouter catalogue, which carries context lengths.
func (o *OpenRouter) Models(ctx context.Context) ([]core.Model, error) {
	var result struct {
		Data []core.Model `json:"data"`
	}
	if err := o.doJSON(ctx, http.MethodGet, "/v1/models", nil, o.headers(), &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
