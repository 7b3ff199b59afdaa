package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// Lambda answers a function URL request the same way POST /api/solve does.
func (s *DefaultServer) Lambda(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if nil != err {
			return lambdaResponse(http.StatusBadRequest, gin.H{"error": "invalid base64 body"})
		}
		body = string(decoded)
	}

	status, payload := s.Handle([]byte(body), event.QueryStringParameters["all"] == "true")
	return lambdaResponse(status, payload)
}

func lambdaResponse(status int, payload interface{}) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(payload)
	if nil != err {
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{StatusCode: status, Headers: jsonHeader, Body: string(body)}, nil
}
