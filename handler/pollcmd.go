package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"saltbot/poll"
	"saltbot/timelength"

	"github.com/bwmarrin/discordgo"
)

const pollHelp string = ("```How to set a poll:\n" +
	"Type the \"!poll\" command followed by the question, answers, and\n" +
	"the time separated by semicolons. For Example:\n\n" +
	"!poll Would you rather eat poop flavored curry or curry flavored poop? ;" +
	" poop flavored curry ; curry flavored poop ; neither ; ends in 2 hours\n\n" +
	"The poll expiry must be in the format \"ends in X Y\" where X is any\n" +
	"positive integer and Y is a unit like (hours, minutes, seconds, days)```")

const voteHelp string = ("```To vote on a poll, use \"!vote <poll id> " +
	"<choice num>\". For example: \"!vote dd32251a 1\"```")

// createPoll handles "!poll <prompt> ; <choice> ; ... ; ends in X Y".
func createPoll(m *discordgo.MessageCreate) (*discordgo.MessageSend, error) {
	words := strings.Split(m.Content, " ")[1:]
	if len(words) < 4 || words[0] == "help" {
		return &discordgo.MessageSend{Content: pollHelp}, nil
	}

	// The tail has to read "ends in X Y"
	if words[len(words)-4] != "ends" || words[len(words)-3] != "in" {
		return &discordgo.MessageSend{Content: pollHelp}, nil
	}

	segments := strings.Split(m.Content, ";")
	if len(segments) < 4 {
		return &discordgo.MessageSend{Content: pollHelp}, nil
	}

	prompt := strings.TrimSpace(stripCommand(segments[0]))

	choices := make([]string, 0, len(segments)-2)
	for _, segment := range segments[1 : len(segments)-1] {
		choices = append(choices, strings.TrimSpace(segment))
	}

	ending := strings.Fields(segments[len(segments)-1])
	if len(ending) < 2 {
		return &discordgo.MessageSend{Content: pollHelp}, nil
	}

	unit := ending[len(ending)-1]
	amount := ending[len(ending)-2]

	p, err := polls.Create(prompt, choices, m.ChannelID, unit, amount)
	if errors.Is(err, timelength.ErrInvalidUnit) || errors.Is(err, timelength.ErrInvalidAmount) {
		return &discordgo.MessageSend{
			Content: fmt.Sprintf("```Error parsing expiry: %v```\n%s", err, pollHelp),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	msg := fmt.Sprintf("```%s\n\n", p.Prompt)
	for idx, choice := range p.Choices {
		msg += fmt.Sprintf("%d. %s\n", idx+1, choice)
	}
	msg += fmt.Sprintf("Type or DM me \"!vote %s <choice number>\" to vote```", p.ID)

	return &discordgo.MessageSend{Content: msg}, nil
}

// castVote handles "!vote <poll id> <choice number>".
func castVote(m *discordgo.MessageCreate) (*discordgo.MessageSend, error) {
	args := strings.Split(m.Content, " ")[1:]
	if len(args) < 2 {
		return &discordgo.MessageSend{Content: voteHelp}, nil
	}

	choiceNum, err := strconv.Atoi(args[1])
	if err != nil {
		return &discordgo.MessageSend{Content: voteHelp}, nil
	}

	p, err := polls.CastVoteAndSave(args[0], m.Author.ID, choiceNum)
	switch {
	case errors.Is(err, poll.ErrNotFound):
		return &discordgo.MessageSend{
			Content: fmt.Sprintf("```Poll %s does not exist or has expired!```", args[0]),
		}, nil

	case errors.Is(err, poll.ErrCorrupt):
		return &discordgo.MessageSend{
			Content: fmt.Sprintf("```Something went wrong with poll %s :(```", args[0]),
		}, nil

	case errors.Is(err, poll.ErrInvalidChoice):
		return &discordgo.MessageSend{
			Content: fmt.Sprintf("```No such choice number: %d```", choiceNum),
		}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	return &discordgo.MessageSend{
		Content: fmt.Sprintf("```You have voted for %s```", p.Choices[choiceNum-1]),
	}, nil
}

func stripCommand(s string) string {
	for _, prefix := range []string{"!poll", "!p"} {
		if strings.HasPrefix(s, prefix) {
			return strings.Replace(s, prefix, "", 1)
		}
	}

	return s
}
