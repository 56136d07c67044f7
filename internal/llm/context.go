package llm

import "context"

type ctxKey int

const (
	purposeCtxKey ctxKey = iota
	sessionCtxKey
)

// Purpose labels used by the content layer.
const (
	PurposeExplain   = "explain"
	PurposeQuiz      = "quiz"
	PurposeTranslate = "translate"
	PurposeSyllabus  = "syllabus"
	PurposeInsights  = "insights"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeCtxKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithSessionID tags every call made with ctx as belonging to a learning session.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionCtxKey, id)
}

// SessionIDFrom returns the session id attached to ctx, or "".
func SessionIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionCtxKey).(string)
	return v
}
