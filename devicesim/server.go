package devicesim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ruteri/dial-descriptor/interfaces"
	"go.uber.org/atomic"
)

const DescriptorPath = "/dd.xml"

type Config struct {
	ListenAddr string

	// ApplicationURL is announced in the Application-URL header. When empty
	// it is derived from the Host of each descriptor request.
	ApplicationURL string

	FriendlyName string
	Manufacturer string
	ModelName    string
	UDN          string
	Behavior     Behavior

	EnablePprof bool
	Log         *slog.Logger

	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

// Server is a simulated DIAL device: it serves a device descriptor the way a
// TV or streaming stick would, with switchable failure behaviors.
type Server struct {
	cfg      *Config
	behavior atomic.String
	log      *slog.Logger

	srv *http.Server
}

func New(cfg *Config) (srv *Server, err error) {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.FriendlyName == "" {
		cfg.FriendlyName = "Simulated DIAL Device"
	}
	if cfg.Manufacturer == "" {
		cfg.Manufacturer = "dial-descriptor"
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "devicesim"
	}
	if cfg.UDN == "" {
		cfg.UDN = uuid.NewString()
	}
	if cfg.Behavior == "" {
		cfg.Behavior = BehaviorNormal
	}
	if _, err := ParseBehavior(string(cfg.Behavior)); err != nil {
		return nil, err
	}
	if cfg.GracefulShutdownDuration == 0 {
		cfg.GracefulShutdownDuration = 30 * time.Second
	}

	srv = &Server{
		cfg: cfg,
		log: cfg.Log,
	}
	srv.behavior.Store(string(cfg.Behavior))

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

// Handler returns the device's router.
func (srv *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.With(srv.httpLogger).Get(DescriptorPath, srv.handleDescriptor)
	mux.With(srv.httpLogger).Get("/apps/{app_name}", srv.handleAppStatus)
	mux.With(srv.httpLogger).Put("/sim/behavior/{behavior}", srv.handleSetBehavior)

	mux.With(srv.httpLogger).Get("/livez", srv.handleLivenessCheck)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) Behavior() Behavior {
	return Behavior(srv.behavior.Load())
}

func (srv *Server) SetBehavior(b Behavior) {
	old := srv.behavior.Swap(string(b))
	srv.log.Info("Behavior changed", "from", old, "to", string(b))
}

func (srv *Server) applicationURL(r *http.Request) string {
	if srv.cfg.ApplicationURL != "" {
		return srv.cfg.ApplicationURL
	}
	return fmt.Sprintf("http://%s/apps/", r.Host)
}

func (srv *Server) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	behavior := srv.Behavior()

	if behavior == BehaviorNotFound {
		http.Error(w, "descriptor not found", http.StatusNotFound)
		return
	}

	body, err := renderDescriptor(srv.cfg, behavior != BehaviorNoFriendlyName)
	if err != nil {
		srv.log.Error("Failed to render descriptor", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	switch behavior {
	case BehaviorMissingHeader:
	case BehaviorMalformedAppURL:
		w.Header().Set(interfaces.ApplicationURLHeader, "/apps/")
	default:
		w.Header().Set(interfaces.ApplicationURLHeader, srv.applicationURL(r))
	}

	if behavior == BehaviorMalformedXML {
		body = body[:len(body)/2]
	}

	w.Header().Set("Content-Type", `text/xml; charset="utf-8"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleAppStatus answers application queries. The simulator runs no
// applications, so every query is a 404 as DIAL prescribes for unknown apps.
func (srv *Server) handleAppStatus(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "application not found", http.StatusNotFound)
}

func (srv *Server) handleSetBehavior(w http.ResponseWriter, r *http.Request) {
	behavior, err := ParseBehavior(chi.URLParam(r, "behavior"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	srv.SetBehavior(behavior)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"behavior":%q}`, behavior)
}

// handleLivenessCheck reports the active behavior so scripts can confirm a
// switch took effect.
func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"alive","behavior":%q}`, srv.Behavior())
}

func (srv *Server) RunInBackground() {
	go func() {
		srv.log.Info("Starting simulated DIAL device", "listenAddress", srv.cfg.ListenAddr, "behavior", srv.Behavior())
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()
}

// Shutdown stops accepting connections and waits for in-flight descriptor
// requests, at most GracefulShutdownDuration.
func (srv *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not stop simulated device: %w", err)
	}
	srv.log.Info("Simulated device stopped")
	return nil
}
