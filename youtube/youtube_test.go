package youtube

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	"saltbot/config"
	"saltbot/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response   any
	statusCode int
	err        error
}

func (f *fakeClient) Get(url string) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	data, _ := json.Marshal(f.response)
	return &http.Response{
		StatusCode: f.statusCode,
		Body:       io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func setup(t *testing.T, c *fakeClient) {
	t.Helper()
	state.Config = &config.Config{APIs: config.APIs{YoutubeKey: "test-key"}}
	old := client
	client = c
	t.Cleanup(func() { client = old })
}

func TestGetFirstResult(t *testing.T) {
	setup(t, &fakeClient{
		statusCode: http.StatusOK,
		response: searchResponse{Items: []video{
			{ID: videoID{VideoID: "abc"}},
			{ID: videoID{VideoID: "def"}},
		}},
	})

	msg, err := Get("!youtube dog")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", msg.Content)
}

func TestGetByIndex(t *testing.T) {
	setup(t, &fakeClient{
		statusCode: http.StatusOK,
		response: searchResponse{Items: []video{
			{ID: videoID{VideoID: "abc"}},
			{ID: videoID{VideoID: "def"}},
		}},
	})

	msg, err := Get("!youtube dog -i 1")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=def", msg.Content)
}

func TestGetNoResults(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	msg, err := Get("!youtube askjdhakjsdh")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "No videos")
}

func TestGetBadIndex(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	for _, content := range []string{"!youtube dog -i", "!youtube dog -i x", "!youtube dog -i 15"} {
		msg, err := Get(content)
		require.NoError(t, err, content)
		assert.NotEmpty(t, msg.Content, content)
	}
}

func TestGetNoQuery(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	msg, err := Get("!youtube")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Must specify")
}

func TestGetUpstreamFailure(t *testing.T) {
	setup(t, &fakeClient{err: errors.New("connection refused")})

	_, err := Get("!youtube dog")
	assert.Error(t, err)
}
