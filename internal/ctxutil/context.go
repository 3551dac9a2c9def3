// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	chatIDKey    contextKey = "ctxutil.chatID"
	updateIDKey  contextKey = "ctxutil.updateID"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithChatID adds a Telegram chat ID to the context.
// Chat ID identifies the conversation the webhook event belongs to.
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatIDKey, chatID)
}

// GetChatID retrieves the chat ID from the context.
// Returns the chat ID and true if found, zero and false otherwise.
func GetChatID(ctx context.Context) (int64, bool) {
	chatID, ok := ctx.Value(chatIDKey).(int64)
	return chatID, ok
}

// WithUpdateID adds the Telegram update ID to the context.
// Update IDs are assigned by the platform per webhook delivery.
func WithUpdateID(ctx context.Context, updateID int64) context.Context {
	return context.WithValue(ctx, updateIDKey, updateID)
}

// GetUpdateID retrieves the update ID from the context.
// Returns the update ID and true if found, zero and false otherwise.
func GetUpdateID(ctx context.Context) (int64, bool) {
	updateID, ok := ctx.Value(updateIDKey).(int64)
	return updateID, ok
}

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per webhook delivery for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// Use for async operations that need tracing but must outlive the parent
// context, such as webhook processing that continues after the HTTP
// acknowledgment has been written.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if chatID, ok := GetChatID(ctx); ok {
		newCtx = WithChatID(newCtx, chatID)
	}
	if updateID, ok := GetUpdateID(ctx); ok {
		newCtx = WithUpdateID(newCtx, updateID)
	}
	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}

	return newCtx
}
