package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey  ctxKey = "req_id"
	ScenarioIDKey ctxKey = "scenario_id"
)

// Time logs the duration of one operation when the returned func runs.
// Request and scenario identifiers are picked up from the context when the
// caller has attached them.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	scenarioID, _ := ctx.Value(ScenarioIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		switch {
		case errp != nil && *errp != nil:
			log.Printf("req_id=%s scenario=%s op=%s dur=%dms err=%v", reqID, scenarioID, name, dur.Milliseconds(), *errp)
		case scenarioID != "":
			log.Printf("req_id=%s scenario=%s op=%s dur=%dms", reqID, scenarioID, name, dur.Milliseconds())
		default:
			log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
		}
	}
}
