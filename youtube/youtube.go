// Package youtube proxies video searches.
package youtube

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

const maxIdx = 14

type videoID struct {
	VideoID string `json:"videoId"`
}

type video struct {
	ID videoID `json:"id"`
}

type searchResponse struct {
	Items []video `json:"items"`
}

func searchVideo(query string, idx int) (string, error) {
	url := fmt.Sprintf("https://www.googleapis.com/youtube/v3/search?key=%s&q=%s&maxResults=15&type=video", state.Config.APIs.YoutubeKey, query)
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to query youtube: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received status code %d from youtube", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read youtube resp: %w", err)
	}

	var parsed searchResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return "", fmt.Errorf("failed to unmarshal youtube response: %w", err)
	}

	if len(parsed.Items) == 0 {
		return "```No videos for that query :(```", nil
	}

	if idx >= len(parsed.Items) {
		idx = len(parsed.Items) - 1
	}

	return "https://www.youtube.com/watch?v=" + parsed.Items[idx].ID.VideoID, nil
}

// Get handles "!youtube <keywords>", with "-i <idx>" picking a
// specific result.
func Get(content string) (*discordgo.MessageSend, error) {
	args := strings.Split(content, " ")[1:]
	if len(args) == 0 {
		return &discordgo.MessageSend{
			Content: "```Must specify a query like: \"!youtube dog\"```",
		}, nil
	}

	idx := 0
	for i, arg := range args {
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

	yt, err := searchVideo(util.QueryFrom(args), idx)
	if err != nil {
		return nil, err
	}

	return &discordgo.MessageSend{Content: yt}, nil
}
