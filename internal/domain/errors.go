package domain

import "errors"

var (
	ErrChatNotFound     = errors.New("chat not found")
	ErrChatNotMonitored = errors.New("chat is not monitored")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrTopicClosed      = errors.New("topic is closed")
	ErrStateCorrupt     = errors.New("rotation state is corrupt")
	ErrNotAuthenticated = errors.New("telegram session is not authorized")
	ErrNoMonitoredChats = errors.New("no monitored chats configured")
	ErrSecretNotFound   = errors.New("secret not found")
)
