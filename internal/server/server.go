// Package server readon
//
// The readon is a Greek community discussion platform: ranked posts, votes and reports.
//
//     Schemes: https
//     BasePath: /api
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readon-gr/readon/internal/api"
	"github.com/readon-gr/readon/internal/health"
	"github.com/readon-gr/readon/internal/metadata"
	mm "github.com/readon-gr/readon/internal/middleware"
	"github.com/readon-gr/readon/internal/service"
	"github.com/readon-gr/readon/internal/tagcache"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const maxBodySize = 64 * 1024

// MetadataTag is attached to cached metadata responses.
const MetadataTag = "metadata"

const metadataTTL = time.Hour

// MetadataFetcher ...
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (*metadata.Metadata, error)
}

// Config ...
type Config struct {
	Timeout   time.Duration
	JWTSecret []byte
	Pingers   []health.Pinger
}

type server struct {
	s service.Service
	m MetadataFetcher
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, m MetadataFetcher, c *tagcache.Cache, r chi.Router, cfg Config) {
	r.Use(
		api.RequestIDMiddleware,
		api.LoggerMiddleware,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		api.RecovererMiddleware,
	)

	r.Get("/health", health.Handler(5*time.Second, cfg.Pingers...))
	r.Handle("/metrics", promhttp.Handler())

	srv := server{
		s: s,
		m: m,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(
			api.TimeoutMiddleware(cfg.Timeout),
			api.BodyLimiterMiddleware(maxBodySize),
			mm.Authenticate(cfg.JWTSecret),
		)

		r.Get("/posts", srv.listPosts)
		r.Post("/posts", srv.createPost)
		r.Get("/posts/{id}", srv.getPost)
		r.Post("/votes", srv.vote)
		r.Post("/user-votes", srv.getUserVotes)
		r.Post("/post-counts", srv.getPostCounts)
		r.Post("/reports", srv.createReport)
		r.Get("/metadata", mm.Cached(c, metadataTTL, srv.getMetadata, MetadataTag))
		r.Get("/communities", srv.listCommunities)
	})
}

func userID(r *http.Request) (string, bool) {
	id := mm.UserID(r.Context())
	return id, id != ""
}
