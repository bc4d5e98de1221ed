package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Handle serves POST /chat behind API Gateway with the same contract as the
// HTTP router.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := correlationID(headerValue(req.Headers, correlationHeader))

	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodPost {
		return lambdaResponse(http.StatusMethodNotAllowed, id, errorResponse{Error: "Method not allowed"}), nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return lambdaResponse(http.StatusBadRequest, id, errorResponse{Error: msgNoMessage}), nil
		}
		body = decoded
	}

	status, payload := h.chat(ctx, id, body)
	return lambdaResponse(status, id, payload), nil
}

func lambdaResponse(status int, correlationID string, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"` + msgInternal + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(body),
	}
}

// headerValue looks up key case-insensitively; API Gateway does not
// normalize header names.
func headerValue(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
