package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// SyncCommand is command requesting synchronization of single catalog account.
type SyncCommand struct {
	AccountID string `json:"accountId"`
}

// SyncCommander sends sync commands.
type SyncCommander struct {
	sender Sender
}

// NewSyncCommander returns new SyncCommander using provided sender for sending messages.
func NewSyncCommander(sender Sender) SyncCommander {
	return SyncCommander{
		sender: sender,
	}
}

// SendSyncCommand sends sync command for provided account.
func (c SyncCommander) SendSyncCommand(ctx context.Context, accountID string) error {
	if accountID == "" {
		return fmt.Errorf("can't send sync command: empty account id")
	}

	cmd := SyncCommand{
		AccountID: accountID,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal sync command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
