package whatsapp_webhook

import (
	"context"

	handleInbound "github.com/taimeline/taimeline-service/internal/usecase/handle_inbound_message"
)

type HandleInboundMessageUseCase interface {
	Execute(ctx context.Context, req *handleInbound.Request) (*handleInbound.Response, error)
}

// TokenVerifier отдает verify token для подтверждения подписки webhook
type TokenVerifier interface {
	VerifyToken() string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
