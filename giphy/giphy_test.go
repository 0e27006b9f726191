package giphy

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
	state.Config = &config.Config{APIs: config.APIs{GiphyKey: "test-key"}}
	old := client
	client = c
	t.Cleanup(func() { client = old })
}

func TestGetFirstResult(t *testing.T) {
	setup(t, &fakeClient{
		statusCode: http.StatusOK,
		response: searchResponse{Data: []gifData{
			{URL: "https://gph.is/one"},
			{URL: "https://gph.is/two"},
		}},
	})

	msg, err := Get("!gif dog")
	require.NoError(t, err)
	assert.Equal(t, "https://gph.is/one", msg.Content)
}

func TestGetByIndex(t *testing.T) {
	setup(t, &fakeClient{
		statusCode: http.StatusOK,
		response: searchResponse{Data: []gifData{
			{URL: "https://gph.is/one"},
			{URL: "https://gph.is/two"},
		}},
	})

	msg, err := Get("!gif dog -i 1")
	require.NoError(t, err)
	assert.Equal(t, "https://gph.is/two", msg.Content)
}

func TestGetAll(t *testing.T) {
	setup(t, &fakeClient{
		statusCode: http.StatusOK,
		response: searchResponse{Data: []gifData{
			{URL: "https://gph.is/one"},
			{URL: "https://gph.is/two"},
		}},
	})

	msg, err := Get("!gif dog -a")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "https://gph.is/one")
	assert.Contains(t, msg.Content, "https://gph.is/two")
}

func TestGetBadIndex(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	for _, content := range []string{"!gif dog -i", "!gif dog -i soon", "!gif dog -i -1", "!gif dog -i 25"} {
		msg, err := Get(content)
		require.NoError(t, err, content)
		assert.NotEmpty(t, msg.Content, content)
	}
}

func TestGetNoQuery(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	msg, err := Get("!gif")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Must specify")
}

func TestGetNoResults(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusOK, response: searchResponse{}})

	msg, err := Get("!gif askjdhakjsdh")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "No gifs")
}

func TestGetUpstreamFailure(t *testing.T) {
	setup(t, &fakeClient{err: errors.New("connection refused")})

	_, err := Get("!gif dog")
	assert.Error(t, err)
}

func TestGetUpstreamStatus(t *testing.T) {
	setup(t, &fakeClient{statusCode: http.StatusForbidden, response: searchResponse{}})

	_, err := Get("!gif dog")
	assert.Error(t, err)
}
