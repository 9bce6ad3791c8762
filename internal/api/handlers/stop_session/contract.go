package stop_session

import (
	"context"

	stopSession "github.com/m04kA/SMC-ReservationService/internal/usecase/stop_session"
)

type StopSessionUseCase interface {
	Execute(ctx context.Context, req *stopSession.Request) (*stopSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
