package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambda(t *testing.T) {
	body, err := ioutil.ReadFile("../testdata/ties.json")
	require.NoError(t, err)

	requests := map[string]events.LambdaFunctionURLRequest{
		"plain":  {Body: string(body)},
		"base64": {Body: base64.StdEncoding.EncodeToString(body), IsBase64Encoded: true},
	}
	for name, req := range requests {
		resp, err := newServer().Lambda(context.Background(), req)
		require.NoError(t, err, name)
		require.Equal(t, http.StatusOK, resp.StatusCode, name)
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])

		var r response
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &r))
		assert.Equal(t, 50, r.Score, name)
		assert.Len(t, r.Activations, 2, name)
	}
}

func TestLambdaRejects(t *testing.T) {
	resp, err := newServer().Lambda(context.Background(), events.LambdaFunctionURLRequest{Body: "%%%", IsBase64Encoded: true})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"invalid base64 body"}`, resp.Body)

	resp, err = newServer().Lambda(context.Background(), events.LambdaFunctionURLRequest{Body: "{"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
