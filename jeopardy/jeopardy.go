// Package jeopardy proxies trivia categories.
package jeopardy

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"saltbot/util"

	"github.com/bwmarrin/discordgo"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var client util.Getter = &http.Client{}

const categoryCount = 18417

type clue struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type categoryResponse struct {
	Title string `json:"title"`
	Clues []clue `json:"clues"`
}

// Get fetches a random category and formats its clues with the
// answers spoiler-tagged.
func Get() (*discordgo.MessageSend, error) {
	url := fmt.Sprintf("http://jservice.io/api/category?id=%d", rand.Intn(categoryCount))

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get jeopardy category: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d from jservice", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jeopardy response: %w", err)
	}

	var category categoryResponse
	err = json.Unmarshal(body, &category)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal jeopardy response: %w", err)
	}

	msg := fmt.Sprintf("```The Category is: %s```\n", category.Title)
	for i, c := range category.Clues {
		msg += fmt.Sprintf("Question %d: %s\nAnswer: ||%s||\n\n", i+1, c.Question, c.Answer)
	}

	return &discordgo.MessageSend{Content: msg}, nil
}
