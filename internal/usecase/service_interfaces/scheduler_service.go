package service_interfaces

import (
	"context"
	"time"
)

type SchedulerService interface {
	CheckCredits(ctx context.Context, now time.Time) error
	CheckInvestments(ctx context.Context, now time.Time) error
	CheckPayments(ctx context.Context, now time.Time) error
	Run(ctx context.Context) error
}
