package handler

import (
	"errors"
	"fmt"
	"strings"

	"saltbot/reminder"
	"saltbot/timelength"
	"saltbot/util"

	"github.com/bwmarrin/discordgo"
)

const remindHelp string = ("```Set a reminder, show reminders or delete a reminder.\n\nTo set one:\n" +
	"\"!remind set finish fixing saltbot bugs in 4 hours\"\n\nTo show all " +
	"reminders:\n\"!remind list\"\n\nTo delete a reminder:\n\"!remind delete " +
	"<ID>\" where <ID> is the id of the reminder given by \"!remind list\"```")

// remind handles "!remind set <message> in X Y", "!remind list" and
// "!remind delete <id>".
func remind(m *discordgo.MessageCreate) (*discordgo.MessageSend, error) {
	args := strings.Split(m.Content, " ")[1:]
	if len(args) == 0 || args[0] == "help" {
		return &discordgo.MessageSend{Content: remindHelp}, nil
	}

	switch args[0] {
	case "set":
		return setReminder(m, args[1:])
	case "list":
		return listReminders(m)
	case "delete":
		return deleteReminder(m, args[1:])
	}

	return &discordgo.MessageSend{Content: remindHelp}, nil
}

func setReminder(m *discordgo.MessageCreate, args []string) (*discordgo.MessageSend, error) {
	// The tail has to read "in X Y"
	if len(args) < 4 || args[len(args)-3] != "in" {
		return &discordgo.MessageSend{Content: remindHelp}, nil
	}

	unit := args[len(args)-1]
	amount := args[len(args)-2]
	message := strings.Join(args[:len(args)-3], " ")

	rem, err := reminders.Create(m.Author.String(), message, m.ChannelID, unit, amount)
	if errors.Is(err, timelength.ErrInvalidUnit) || errors.Is(err, timelength.ErrInvalidAmount) {
		return &discordgo.MessageSend{
			Content: fmt.Sprintf("```Error parsing expiry: %v```\n%s", err, remindHelp),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return &discordgo.MessageSend{
		Content: fmt.Sprintf("```Created reminder with id: %s```", rem.ID),
	}, nil
}

func listReminders(m *discordgo.MessageCreate) (*discordgo.MessageSend, error) {
	owned, err := reminders.ListByOwner(m.Author.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	msg := "```Reminders:\n"
	for _, rem := range owned {
		msg += fmt.Sprintf("%s: %s on %s\n", rem.ID, rem.Message, util.FormatExpiry(rem.Expiry))
	}

	return &discordgo.MessageSend{Content: msg + "```"}, nil
}

func deleteReminder(m *discordgo.MessageCreate, args []string) (*discordgo.MessageSend, error) {
	if len(args) == 0 {
		return &discordgo.MessageSend{
			Content: "```To delete a reminder, you must specify the id. Use \"!remind list\" to see all your reminders```",
		}, nil
	}

	err := reminders.Delete(m.Author.String(), args[0])
	if errors.Is(err, reminder.ErrNotFound) {
		return &discordgo.MessageSend{
			Content: "```Either that reminder doesn't exist or you don't have access to it```",
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to delete reminder: %w", err)
	}

	return &discordgo.MessageSend{
		Content: fmt.Sprintf("```Deleted reminder %s```", args[0]),
	}, nil
}
