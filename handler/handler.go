// Package handler translates chat commands into repository and
// adapter calls and formats the replies.
package handler

import (
	"fmt"
	"math/rand"
	"strings"

	"saltbot/giphy"
	"saltbot/jeopardy"
	"saltbot/metrics"
	"saltbot/poll"
	"saltbot/reminder"
	"saltbot/state"
	"saltbot/youtube"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const help string = ("```Good salty day to you! Here's a list of commands that I understand:\n\n" +
	"!help (!h):     Shows this help message.\n" +
	"!jeopardy (!j): Receive a category with 5 questions and answers. The answers\n" +
	"                are marked as spoilers and are not revealed until you click them\n" +
	"!whisper (!pm): Get a salty DM from SaltBot. This can be used as a playground\n" +
	"                for experiencing all of the salty features.\n" +
	"!gif (!g):      Type !gif followed by keywords to get a cool gif. For example\n" +
	"                \"!gif dog\".\n" +
	"!waifu (!w):    Get a picture of a randomized waifu.\n" +
	"!poll (!p):     Type \"!poll help\" for detailed information\n" +
	"!vote (!v):     Vote in a poll. Type \"!vote <poll id> <choice number>\" to vote\n" +
	"!youtube (!y):  Get a youtube search result. Use the \"-i\" parameter to specify\n" +
	"                an index. For example: \"!y dog -i 3\" to get the 3rd query result.\n" +
	"!remind (!r):   Set a reminder. Type \"!remind help\" for detailed information```")

var (
	polls     *poll.Repo
	reminders *reminder.Repo
)

// Setup wires the repositories the command handlers operate on. Must
// run before the session starts dispatching messages.
func Setup(p *poll.Repo, r *reminder.Repo) {
	polls = p
	reminders = r
}

func helpMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{Content: help}
}

func waifuMessage() *discordgo.MessageSend {
	url := fmt.Sprintf("https://www.thiswaifudoesnotexist.net/example-%d.jpg", rand.Intn(99999))
	return &discordgo.MessageSend{
		Content: "Here's a waifu for you!",
		Embeds: []*discordgo.MessageEmbed{
			{
				URL:         url,
				Type:        discordgo.EmbedTypeImage,
				Title:       "Here's the sauce site",
				Description: "Check out the link above to go to the site that makes this feature possible",
				Image: &discordgo.MessageEmbedImage{
					URL: url,
				},
			},
		},
	}
}

func whisper(s *discordgo.Session, m *discordgo.MessageCreate) {
	channel, err := s.UserChannelCreate(m.Author.ID)
	if err != nil {
		s.ChannelMessageSendComplex(m.ChannelID, internalError(err))
		return
	}

	msg := fmt.Sprintf("```Hello %s! You can talk to me here (where no one can hear our mutual salt)```", m.Author.Username)
	s.ChannelMessageSend(channel.ID, msg)
}

// internalError logs the real error under a fresh id and hands the
// user only the id, never the details.
func internalError(err error) *discordgo.MessageSend {
	errID := uuid.NewString()
	state.Logger.Errorw("command failed", "error_id", errID, "error", err)
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("```Unexpected error with id: %s :(```", errID),
	}
}

func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore our own messages
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	var message *discordgo.MessageSend
	var err error
	command := strings.Split(m.Content, " ")[0]
	switch command {
	case "!help", "!h":
		message = helpMessage()
	case "!waifu", "!w":
		message = waifuMessage()
	case "!jeopardy", "!j":
		message, err = jeopardy.Get()
	case "!gif", "!g":
		message, err = giphy.Get(m.Content)
	case "!youtube", "!y":
		message, err = youtube.Get(m.Content)
	case "!whisper", "!pm":
		metrics.CommandsHandled.WithLabelValues("whisper").Inc()
		whisper(s, m)
		return
	case "!poll", "!p":
		message, err = createPoll(m)
	case "!vote", "!v":
		message, err = castVote(m)
	case "!remind", "!r":
		message, err = remind(m)
	// Unknown commands are somebody else's business
	default:
		return
	}

	metrics.CommandsHandled.WithLabelValues(strings.TrimPrefix(command, "!")).Inc()

	if err != nil {
		message = internalError(err)
	}

	_, err = s.ChannelMessageSendComplex(m.ChannelID, message)
	if err != nil {
		state.Logger.Errorw("failed to send reply", "channel", m.ChannelID, "error", err)
	}
}
