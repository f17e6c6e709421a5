package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's id. Set by the
// authentication middleware; consumed by the per-user rate limiter.
const CtxKeyUserID ctxKey = "user_id"

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
