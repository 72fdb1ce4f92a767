package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/storefront/internal/catalog"
)

// Error codes shared by every failure envelope.
const (
	codeValidation     = "validation_error"
	codeInvalidJSON    = "invalid_json"
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeInternal       = "internal"
)

type dataBody struct {
	Data any `json:"data"`
}

type listBody struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

// pagination reports the page shape of a list response. NextPageKey is a
// pointer so an exhausted listing serializes as an explicit null.
type pagination struct {
	PageSize    int     `json:"pageSize"`
	TotalCount  int     `json:"totalCount"`
	NextPageKey *string `json:"nextPageKey"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Violations catalog.Violations `json:"violations,omitempty"`
}

// respond serializes payload as the JSON body of a proxy response.
func respond(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":{"code":"internal","message":"internal error"}}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func respondError(status int, code, message string) events.APIGatewayProxyResponse {
	return respond(status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondViolations reports every broken write rule, in rule order.
func respondViolations(violations catalog.Violations) events.APIGatewayProxyResponse {
	return respond(http.StatusBadRequest, errorBody{Error: errorDetail{
		Code:       codeValidation,
		Message:    "request failed validation",
		Violations: violations,
	}})
}

// respondNotFound is shared by every route that resolves an id, so a
// missing product reads the same everywhere.
func respondNotFound() events.APIGatewayProxyResponse {
	return respondError(http.StatusNotFound, codeNotFound, "product not found")
}

// respondInternal deliberately says nothing about the cause; details go
// to the log, not the client.
func respondInternal() events.APIGatewayProxyResponse {
	return respondError(http.StatusInternalServerError, codeInternal, "internal error")
}

func respondNoContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}
}

// decodeBody parses the request body into a field map, honoring API
// Gateway's base64 flag. On failure the second return is the 400 response
// to send.
func decodeBody(req events.APIGatewayProxyRequest) (map[string]any, *events.APIGatewayProxyResponse) {
	raw := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			resp := respondError(http.StatusBadRequest, codeInvalidJSON, "request body is not valid base64")
			return nil, &resp
		}
		raw = decoded
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		resp := respondError(http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON: "+err.Error())
		return nil, &resp
	}
	if fields == nil {
		resp := respondError(http.StatusBadRequest, codeInvalidJSON, "request body is not a JSON object")
		return nil, &resp
	}
	return fields, nil
}

// nullableCursor maps the store's empty-means-done cursor to the explicit
// null the response envelope promises.
func nullableCursor(cursor string) *string {
	if cursor == "" {
		return nil
	}
	return &cursor
}
