package relay

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// ApproveRequest approves a signup request and surfaces the verification
// code once through ?sent_code=.
func (rl *Relay) ApproveRequest(ctx context.Context, token, rawID string) Outcome {
	id, ok := parseID(rawID)
	if !ok {
		return to("/admin")
	}
	code, err := rl.client.Bind(token).ApproveSignup(ctx, id)
	if err != nil {
		zap.S().Infow("approve failed", "id", id, "err", err)
		return to("/admin")
	}
	if code == "" {
		return to("/admin")
	}
	return Outcome{Path: "/admin", Query: url.Values{"sent_code": {code}}}
}

func (rl *Relay) RejectRequest(ctx context.Context, token, rawID string) Outcome {
	if id, ok := parseID(rawID); ok {
		if err := rl.client.Bind(token).RejectSignup(ctx, id); err != nil {
			zap.S().Infow("reject failed", "id", id, "err", err)
		}
	}
	return to("/admin")
}

func (rl *Relay) UnlockUser(ctx context.Context, token, rawID string) Outcome {
	if id, ok := parseID(rawID); ok {
		if err := rl.client.Bind(token).UnlockUser(ctx, id); err != nil {
			zap.S().Infow("unlock failed", "id", id, "err", err)
		}
	}
	return to("/admin")
}
