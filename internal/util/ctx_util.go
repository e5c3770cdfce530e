package util

import (
	"context"

	"github.com/RoyceAzure/lab/plantshop/internal/constants"
	"github.com/RoyceAzure/lab/plantshop/internal/token"
)

// GetTokenPayloadFromContext returns the verified token payload, or nil when
// the request carried no usable token.
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload)
	}

	return tokenPayload
}

// GetRequestIDFromContext returns the request id, or "unknown" outside a
// request scope.
func GetRequestIDFromContext(ctx context.Context) string {
	requestID := "unknown"
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		requestID = v.(string)
	}
	return requestID
}
