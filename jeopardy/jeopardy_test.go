package jeopardy

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

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

func swap(t *testing.T, c *fakeClient) {
	t.Helper()
	old := client
	client = c
	t.Cleanup(func() { client = old })
}

func TestGet(t *testing.T) {
	swap(t, &fakeClient{
		statusCode: http.StatusOK,
		response: categoryResponse{
			Title: "Potent Potables",
			Clues: []clue{
				{Question: "q1", Answer: "a1"},
				{Question: "q2", Answer: "a2"},
			},
		},
	})

	msg, err := Get()
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Potent Potables")
	assert.Contains(t, msg.Content, "Question 1: q1")
	assert.Contains(t, msg.Content, "||a1||")
	assert.Contains(t, msg.Content, "Question 2: q2")
}

func TestGetUpstreamFailure(t *testing.T) {
	swap(t, &fakeClient{err: errors.New("connection refused")})

	_, err := Get()
	assert.Error(t, err)
}

func TestGetUpstreamStatus(t *testing.T) {
	swap(t, &fakeClient{statusCode: http.StatusNotFound})

	_, err := Get()
	assert.Error(t, err)
}
