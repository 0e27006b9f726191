// Package giphy proxies gif searches. Stateless: request, parse,
// format.
package giphy

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"saltbot/state"
	"saltbot/util"

	"github.com/bwmarrin/discordgo"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var client util.Getter = &http.Client{}

const maxIdx = 24

type gifData struct {
	// Only the short url matters
	URL string `json:"bitly_gif_url"`
}

type searchResponse struct {
	Data []gifData `json:"data"`
}

func search(query string) (*searchResponse, error) {
	url := fmt.Sprintf("http://api.giphy.com/v1/gifs/search?q=%s&api_key=%s", query, state.Config.APIs.GiphyKey)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to query giphy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d from giphy", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read giphy resp: %w", err)
	}

	var parsed searchResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal giphy response: %w", err)
	}

	return &parsed, nil
}

// Get handles "!gif <keywords>", with "-i <idx>" picking a specific
// result and "-a" listing all of them.
func Get(content string) (*discordgo.MessageSend, error) {
	args := strings.Split(content, " ")[1:]
	if len(args) == 0 {
		return &discordgo.MessageSend{
			Content: "```Must specify a giphy query like: \"!gif dog\"```",
		}, nil
	}

	idx := 0
	listAll := false
	for i, arg := range args {
		if arg == "-a" {
			listAll = true
			break
		}

		if arg == "-i" {
			if i+1 >= len(args) {
				return &discordgo.MessageSend{
					Content: "```The \"-i\" flag needs a number after it```",
				}, nil
			}

			parsed, err := strconv.Atoi(args[i+1])
			if err != nil || parsed < 0 || parsed > maxIdx {
				return &discordgo.MessageSend{
					Content: fmt.Sprintf("```Must use a valid number between 0 and %d```", maxIdx),
				}, nil
			}

			idx = parsed
			break
		}
	}

	resp, err := search(util.QueryFrom(args))
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return &discordgo.MessageSend{
			Content: "```No gifs for that query :(```",
		}, nil
	}

	if listAll {
		msg := "Here's all the gifs for that query:\n"
		for _, data := range resp.Data {
			msg += data.URL + "\n"
		}

		return &discordgo.MessageSend{Content: msg}, nil
	}

	if idx >= len(resp.Data) {
		idx = len(resp.Data) - 1
	}

	return &discordgo.MessageSend{Content: resp.Data[idx].URL}, nil
}
