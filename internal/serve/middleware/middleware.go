package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/serve/httperror"
)

// RecoverHandler is a middleware that recovers from panics and logs the error.
func RecoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}

			// No need to recover when the client has disconnected:
			if errors.Is(err, http.ErrAbortHandler) {
				panic(err)
			}

			ctx := req.Context()
			log.Ctx(ctx).WithStack(err).Error(err)
			httperror.InternalError(ctx, "", err).Render(rw)
		}()

		next.ServeHTTP(rw, req)
	})
}

// MetricsRequestHandler is a middleware that monitors http requests, and export the data
// to the metrics server
func MetricsRequestHandler(monitorService monitor.MonitorServiceInterface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			mw := middleware.NewWrapResponseWriter(rw, req.ProtoMajor)
			then := time.Now()
			next.ServeHTTP(mw, req)

			duration := time.Since(then)

			labels := monitor.HttpRequestLabels{
				Status: fmt.Sprintf("%d", mw.Status()),
				Route:  getRoutePattern(req),
				Method: req.Method,
			}

			err := monitorService.MonitorHttpRequestDuration(duration, labels)
			if err != nil {
				log.Ctx(req.Context()).Errorf("Error trying to monitor request time: %s", err)
			}
		})
	}
}

// LoggingMiddleware is a middleware that logs requests to the logger.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		mw := middleware.NewWrapResponseWriter(rw, req.ProtoMajor)

		reqCtx := req.Context()
		logCtx := log.Set(reqCtx, log.Ctx(reqCtx).WithFields(log.F{
			"method": req.Method,
			"path":   req.URL.String(),
			"req":    middleware.GetReqID(reqCtx),
		}))
		req = req.WithContext(logCtx)

		log.Ctx(logCtx).WithFields(log.F{
			"subsys":    "http",
			"ip":        req.RemoteAddr,
			"useragent": req.Header.Get("User-Agent"),
		}).Info("starting request")
		started := time.Now()

		next.ServeHTTP(mw, req)

		log.Ctx(logCtx).WithFields(log.F{
			"subsys":   "http",
			"status":   mw.Status(),
			"bytes":    mw.BytesWritten(),
			"duration": time.Since(started),
			"route":    getRoutePattern(req),
		}).Info("finished request")
	})
}

func CorsMiddleware(corsAllowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		cors := cors.New(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedHeaders: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		})

		return cors.Handler(next)
	}
}

// RateLimitMiddleware allows requestLimit requests per window for each client IP and answers 429 beyond that.
// A requestLimit lower than one disables the limiter.
func RateLimitMiddleware(requestLimit int, window time.Duration) func(http.Handler) http.Handler {
	if requestLimit < 1 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		requestLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			log.Ctx(r.Context()).Warnf("Rate limit of %d requests per %s exceeded by %s", requestLimit, window, r.RemoteAddr)
			httperror.TooManyRequests("").Render(w)
		}),
	)
}

// getRoutePattern returns the chi route pattern of the request, or "undefined" when no route matches.
func getRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "undefined"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	routePath := r.URL.Path
	if r.URL.RawPath != "" {
		routePath = r.URL.RawPath
	}

	tctx := chi.NewRouteContext()
	if !rctx.Routes.Match(tctx, r.Method, routePath) {
		return "undefined"
	}

	// tctx has the updated pattern, since Match mutates it
	return tctx.RoutePattern()
}
