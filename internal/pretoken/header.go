package pretoken

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// DecodeHeader reads the common Cognito trigger header out of a raw event.
// The header is only used for log correlation, so unknown fields are ignored.
func DecodeHeader(event map[string]any) (events.CognitoEventUserPoolsHeader, error) {
	var header events.CognitoEventUserPoolsHeader
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &header,
	})
	if err != nil {
		return header, fmt.Errorf("error creating header decoder: %w", err)
	}
	if err := decoder.Decode(event); err != nil {
		return header, fmt.Errorf("error decoding event header: %w", err)
	}
	return header, nil
}

// HeaderFields turns a decoded header into log fields
func HeaderFields(header events.CognitoEventUserPoolsHeader) []zap.Field {
	return []zap.Field{
		zap.String("triggerSource", header.TriggerSource),
		zap.String("userPoolId", header.UserPoolID),
		zap.String("userName", header.UserName),
		zap.String("clientId", header.CallerContext.ClientID),
	}
}
