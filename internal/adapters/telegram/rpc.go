package telegram

import (
	"context"

	"github.com/gotd/td/tg"
)

// rpc is the subset of *tg.Client used by Client.
type rpc interface {
	MessagesGetDialogs(ctx context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error)
	ChannelsGetForumTopics(ctx context.Context, request *tg.ChannelsGetForumTopicsRequest) (*tg.MessagesForumTopics, error)
	ChannelsGetForumTopicsByID(ctx context.Context, request *tg.ChannelsGetForumTopicsByIDRequest) (*tg.MessagesForumTopics, error)
	MessagesGetReplies(ctx context.Context, request *tg.MessagesGetRepliesRequest) (tg.MessagesMessagesClass, error)
	ChannelsCreateForumTopic(ctx context.Context, request *tg.ChannelsCreateForumTopicRequest) (tg.UpdatesClass, error)
	ChannelsEditForumTopic(ctx context.Context, request *tg.ChannelsEditForumTopicRequest) (tg.UpdatesClass, error)
	MessagesSendMessage(ctx context.Context, request *tg.MessagesSendMessageRequest) (tg.UpdatesClass, error)
}

var _ rpc = (*tg.Client)(nil)
