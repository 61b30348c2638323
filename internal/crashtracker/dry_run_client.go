package crashtracker

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// dryRunClient only logs. It is the default tracker, so lab runs never send a failed scan anywhere.
type dryRunClient struct{}

func (s *dryRunClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	if msg != "" {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	log.Ctx(ctx).Errorf("[DRY_RUN Crash Reporter] %+v", err)
}

func (s *dryRunClient) LogAndReportMessages(ctx context.Context, msg string) {
	log.Ctx(ctx).Infof("[DRY_RUN Crash Reporter] %s", msg)
}

func (s *dryRunClient) FlushEvents(time.Duration) bool {
	return false
}

func (s *dryRunClient) Recover() {}

func NewDryRunClient() *dryRunClient {
	return &dryRunClient{}
}

var _ CrashTrackerClient = (*dryRunClient)(nil)
