// Package server exposes the generated birthday feed and a JSON date
// conversion endpoint over HTTP, bound to localhost.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ldelacroix/polycal/internal/calendar"
	"github.com/ldelacroix/polycal/internal/config"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the generated ICS feed at the root route and ad-hoc
// date conversions at /convert.
type FeedServer struct {
	// cache uses atomic.Pointer for lock-free reads. The feed is read
	// frequently by clients but replaced only on sync, so an atomic swap
	// beats a RWMutex on the hot path.
	cache    atomic.Pointer[cacheItem]
	Port     string
	Registry *calendar.Registry
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string, reg *calendar.Registry) *FeedServer {
	return &FeedServer{
		Port:     port,
		Registry: reg,
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}
	if s.Registry == nil {
		return errors.New(config.ErrRegistryMissing)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeedRequest)
	mux.HandleFunc(config.RouteConvert, s.handleConvertRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed content.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
	lastMod := time.Now().UTC().Format(http.TimeFormat)

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	}

	// Concurrent readers see either the old or the new complete item,
	// never a partial state.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// convertResponse is the JSON body of a successful /convert call.
type convertResponse struct {
	Input     string `json:"input"`
	Target    string `json:"target"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Era       string `json:"era,omitempty"`
	Formatted string `json:"formatted"`
	JDN       int64  `json:"jdn"`
}

// handleConvertRequest converts a Gregorian date passed as ?date=YYYY-MM-DD
// into the calendar named by ?to, optionally rendered with ?pattern.
func (s *FeedServer) handleConvertRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	gd, ok := s.Registry.Parse(q.Get(config.QueryParamDate), calendar.Gregorian)
	if !ok {
		http.Error(w, config.HTTPMsgBadDate, http.StatusBadRequest)
		return
	}

	target, err := calendar.ParseKind(q.Get(config.QueryParamTo))
	if err != nil {
		http.Error(w, config.HTTPMsgBadKind, http.StatusBadRequest)
		return
	}
	conv, err := s.Registry.Converter(target)
	if err != nil {
		http.Error(w, config.HTTPMsgBadKind, http.StatusBadRequest)
		return
	}

	jdn := calendar.GregorianToJDN(gd.Year, gd.Month, gd.Day)
	out := conv.FromJDN(jdn)

	resp := convertResponse{
		Input:     q.Get(config.QueryParamDate),
		Target:    target.String(),
		Year:      out.Year,
		Month:     out.Month,
		Day:       out.Day,
		Era:       out.Era,
		Formatted: conv.Format(out, q.Get(config.QueryParamPattern)),
		JDN:       int64(jdn),
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)

	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
