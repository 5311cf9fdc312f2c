package api

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
)

var ErrEmptyBody = errors.New("request body is empty")

// DecodeBody unmarshals a JSON request body, decoding base64 first when API
// Gateway flagged it as binary
func DecodeBody(request events.APIGatewayProxyRequest, out interface{}) error {
	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return fmt.Errorf("decoding base64 body: %w", err)
		}
		body = decoded
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding JSON body: %w", err)
	}
	return nil
}
