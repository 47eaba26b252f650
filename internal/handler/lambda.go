package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/models"
)

type LambdaFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": strings.Join(allowedMethods, ", "),
		"Access-Control-Allow-Headers": strings.Join(allowedHeaders, ", "),
	}
}

// LambdaHandler serves the search behind API Gateway. Every response,
// including errors, carries the CORS headers.
func LambdaHandler(s Searcher, log zerolog.Logger) LambdaFunc {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if req.HTTPMethod == http.MethodOptions {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers:    corsHeaders(),
				Body:       "ok",
			}, nil
		}

		requestID := req.RequestContext.RequestID
		if requestID == "" {
			requestID = uuid.NewString()
		}
		reqLog := log.With().Str("request_id", requestID).Logger()

		var intent models.SearchIntent
		if err := json.Unmarshal([]byte(req.Body), &intent); err != nil {
			reqLog.Warn().Err(err).Msg("could not decode search body")
			return respond(http.StatusBadRequest, models.ErrorResponse{
				Error: "invalid request body: " + err.Error(),
				Code:  models.CodeInvalidRequest,
			}, requestID), nil
		}

		status, body := runSearch(reqLog.WithContext(ctx), s, intent)
		reqLog.Info().Int("status", status).Msg("request")
		return respond(status, body, requestID), nil
	}
}

func respond(status int, body any, requestID string) events.APIGatewayProxyResponse {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json"
	headers["X-Request-Id"] = requestID

	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(models.ErrorResponse{Error: err.Error(), Code: models.CodeSearch})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(payload),
	}
}
