// Package health contains code for health checks.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "undefined"
)

var log = logrus.WithField("layer", "api").WithField("package", "health")

// GetVersion returns service's version and commit.
func GetVersion() string {
	return fmt.Sprintf("%s-%s", version, commit)
}

// VersionResponse ...
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Response ...
type Response struct {
	VersionResponse
	Errors map[string]string `json:"errors,omitempty"`
}

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

type subjectPinger struct {
	f func(ctx context.Context) error
	s string
}

// Ping ...
func (p subjectPinger) Ping(ctx context.Context) error {
	return p.f(ctx)
}

// Name ...
func (p subjectPinger) Name() string {
	return p.s
}

// SubjectPinger wraps a ping function, e.g. (storage.Storage).Ping, with a name.
func SubjectPinger(s string, f func(ctx context.Context) error) Pinger {
	return subjectPinger{
		f: f,
		s: s,
	}
}

// Handler returns handler which pings all dependencies concurrently.
// It responds 503 when any of them failed.
func Handler(timeout time.Duration, p ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		gr, ctx := errgroup.WithContext(ctx)

		var mu sync.Mutex
		resp := Response{
			VersionResponse: VersionResponse{Version: version, Commit: commit},
			Errors:          map[string]string{},
		}

		for i := range p {
			v := p[i]
			gr.Go(func() error {
				err := v.Ping(ctx)
				if err == nil {
					return nil
				}

				log.WithError(err).WithField("subject", v.Name()).Error("health check failed")

				mu.Lock()
				resp.Errors[v.Name()] = err.Error()
				mu.Unlock()

				return nil
			})
		}

		_ = gr.Wait()

		status := http.StatusOK
		if len(resp.Errors) > 0 {
			status = http.StatusServiceUnavailable
		}

		data, _ := json.Marshal(resp)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(data)
	}
}
