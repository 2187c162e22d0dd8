// Package communications wraps internal messaging and user notifications.
package communications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/pkg/errors"
)

type Message struct {
	ID           int64  `json:"id,omitempty"`
	SenderID     int64  `json:"senderId,omitempty"`
	SenderName   string `json:"senderName,omitempty"`
	ReceiverID   int64  `json:"receiverId"`
	ReceiverName string `json:"receiverName,omitempty"`
	Subject      string `json:"subject"`
	Content      string `json:"content"`
	SentAt       string `json:"sentAt,omitempty"`
	Read         bool   `json:"read"`
	ReadAt       string `json:"readAt,omitempty"`
}

type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	ActionURL string `json:"actionUrl,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Attachment struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type Client struct {
	api *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// Send delivers a message. The backend fills in the sender from the session.
func (c *Client) Send(ctx context.Context, m Message, attachment *Attachment) (*Message, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "[communications Send] encoding message")
	}
	var files []api.File
	if attachment != nil {
		files = append(files, api.File{Field: "file", Name: attachment.Name, ContentType: attachment.ContentType, Content: attachment.Content})
	}
	var out Message
	if err := c.api.Upload(ctx, api.RouteMessages, nil, map[string]string{"message": string(payload)}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Inbox(ctx context.Context, userID int64) ([]Message, error) {
	var out []Message
	err := c.api.Get(ctx, api.RouteInbox(userID), nil, &out)
	return out, err
}

func (c *Client) MarkRead(ctx context.Context, messageID int64) error {
	return c.api.Do(ctx, http.MethodPatch, api.RouteMessageRead(messageID), nil, struct{}{}, nil)
}

func (c *Client) Notifications(ctx context.Context, userID int64) ([]Notification, error) {
	var out []Notification
	err := c.api.Get(ctx, api.RouteUserNotifications(userID), nil, &out)
	return out, err
}

// UnreadCount is the badge number shown next to the inbox
func (c *Client) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var out int64
	err := c.api.Get(ctx, api.RouteUnreadCount(userID), nil, &out)
	return out, err
}
