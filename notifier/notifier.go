// Package notifier adapts a discordgo session to the expiry monitor's
// Notifier interface.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord sends monitor payloads through the bot's session. Every
// send carries a deadline so one stuck request cannot starve a sweep.
type Discord struct {
	Session *discordgo.Session
	Timeout time.Duration
}

func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{Session: s, Timeout: 10 * time.Second}
}

func (d *Discord) Notify(channelID, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	_, err := d.Session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send to channel %s: %w", channelID, err)
	}

	return nil
}
