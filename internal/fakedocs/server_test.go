package fakedocs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/models"
)

func post(t *testing.T, url, token string, body any) (*http.Response, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(constants.AuthHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func TestLogin(t *testing.T) {
	server := NewServer()
	server.AddUser("user1", "password")
	server.Start()
	defer server.Close()

	_, env := post(t, server.URL()+constants.LoginPath, "", map[string]string{"username": "user1", "password": "password"})
	assert.Equal(t, 0, env.ErrorCode)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])

	_, env = post(t, server.URL()+constants.LoginPath, "", map[string]string{"username": "user1", "password": "wrong"})
	assert.Equal(t, ErrorCodeAccessDenied, env.ErrorCode)
	assert.Nil(t, env.Data)
	assert.Equal(t, 2, server.Requests(OpLogin))
}

func TestWritesRequireToken(t *testing.T) {
	server := NewServer()
	server.Start()
	defer server.Close()

	resp, _ := post(t, server.URL()+constants.CreatePath, "", models.Record{DocumentName: "a"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	server.IssueToken("user1", "tok")
	resp, env := post(t, server.URL()+constants.CreatePath, "tok", models.Record{ID: "client-side", DocumentName: "a"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.ErrorCode)

	records := server.Records()
	require.Len(t, records, 1)
	assert.NotEqual(t, "client-side", records[0].ID)

	server.RevokeTokens()
	resp, _ = post(t, server.URL()+constants.DeletePath+records[0].ID, "tok", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateAndDelete(t *testing.T) {
	server := NewServer()
	server.IssueToken("user1", "tok")
	seeded := server.Seed(models.Record{DocumentName: "a"}, models.Record{ID: "fixed", DocumentName: "b"})
	server.Start()
	defer server.Close()

	require.Len(t, seeded, 2)
	assert.NotEmpty(t, seeded[0].ID)
	assert.Equal(t, "fixed", seeded[1].ID)

	_, env := post(t, server.URL()+constants.UpdatePath+"fixed", "tok", models.Record{DocumentName: "b2"})
	assert.Equal(t, 0, env.ErrorCode)
	assert.Equal(t, "b2", server.Records()[1].DocumentName)

	_, env = post(t, server.URL()+constants.UpdatePath+"missing", "tok", models.Record{DocumentName: "x"})
	assert.Equal(t, ErrorCodeNotFound, env.ErrorCode)

	_, env = post(t, server.URL()+constants.DeletePath+seeded[0].ID, "tok", nil)
	assert.Equal(t, 0, env.ErrorCode)
	records := server.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "fixed", records[0].ID)
}

func TestFailureInjection(t *testing.T) {
	server := NewServer()
	server.IssueToken("user1", "tok")
	server.Start()
	defer server.Close()

	server.Fail(Failure{Op: OpCreate, Status: http.StatusInternalServerError, Times: 1})
	server.Fail(Failure{Op: OpCreate, ErrorCode: 42, ErrorText: "boom", Times: 1})

	resp, _ := post(t, server.URL()+constants.CreatePath, "tok", models.Record{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	_, env := post(t, server.URL()+constants.CreatePath, "tok", models.Record{})
	assert.Equal(t, 42, env.ErrorCode)
	assert.Equal(t, "boom", env.ErrorText)

	_, env = post(t, server.URL()+constants.CreatePath, "tok", models.Record{})
	assert.Equal(t, 0, env.ErrorCode)
	assert.Len(t, server.Records(), 1)
	assert.Equal(t, 3, server.Requests(OpCreate))
}

func TestDelayHonorsClientCancellation(t *testing.T) {
	server := NewServer()
	server.IssueToken("user1", "tok")
	server.Fail(Failure{Op: OpFetch, Delay: time.Minute})
	server.Start()
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL()+constants.FetchPath, http.NoBody)
	require.NoError(t, err)
	req.Header.Set(constants.AuthHeader, "tok")

	_, err = http.DefaultClient.Do(req)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
