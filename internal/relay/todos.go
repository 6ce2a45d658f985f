package relay

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/upstream"
)

// TodoInput is the add form.
type TodoInput struct {
	Text     string `form:"text,trim"`
	Priority string `form:"priority"`
}

// PriorityInput is the per-item priority form.
type PriorityInput struct {
	Priority string `form:"priority"`
}

func orMedium(p string) string {
	if p == "" {
		return upstream.PriorityMedium
	}
	return p
}

// CreateTodo adds an item.  Blank text makes no call.
func (rl *Relay) CreateTodo(ctx context.Context, token string, in TodoInput) Outcome {
	if in.Text == "" {
		return to("/")
	}
	if err := rl.client.Bind(token).CreateTodo(ctx, in.Text, orMedium(in.Priority)); err != nil {
		zap.S().Infow("create todo failed", "err", err)
	}
	return to("/")
}

func (rl *Relay) ToggleTodo(ctx context.Context, token, rawID string) Outcome {
	if id, ok := parseID(rawID); ok {
		if err := rl.client.Bind(token).ToggleTodo(ctx, id); err != nil {
			zap.S().Infow("toggle todo failed", "id", id, "err", err)
		}
	}
	return to("/")
}

func (rl *Relay) SetTodoPriority(ctx context.Context, token, rawID string, in PriorityInput) Outcome {
	if id, ok := parseID(rawID); ok {
		if err := rl.client.Bind(token).SetTodoPriority(ctx, id, orMedium(in.Priority)); err != nil {
			zap.S().Infow("set priority failed", "id", id, "err", err)
		}
	}
	return to("/")
}

func (rl *Relay) DeleteTodo(ctx context.Context, token, rawID string) Outcome {
	if id, ok := parseID(rawID); ok {
		if err := rl.client.Bind(token).DeleteTodo(ctx, id); err != nil {
			zap.S().Infow("delete todo failed", "id", id, "err", err)
		}
	}
	return to("/")
}
