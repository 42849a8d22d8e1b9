// Package domainverify serves the Apple Pay merchant domain-association file.
package domainverify

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	WellKnownPath      = "/.well-known/apple-developer-merchantid-domain-association"
	DefaultFilePath    = "public" + WellKnownPath
	DefaultContentType = "application/octet-stream"
)

// auditHeaders are copied into the audit record when present.
var auditHeaders = []string{"User-Agent", "X-Forwarded-For", "X-Forwarded-Proto", "Referer"}

type Config struct {
	FilePath    string
	ContentType string
	Audit       bool
}

// Responder writes the association file exactly as it sits on disk. The file is read on
// every request so a replaced file is picked up without a restart.
type Responder struct {
	cfg    Config
	logger *zap.SugaredLogger
}

func NewResponder(cfg Config, logger *zap.SugaredLogger) *Responder {
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultFilePath
	}
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultContentType
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Responder{cfg: cfg, logger: logger.With("component", "domainverify")}
}

func (rs *Responder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(rs.cfg.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rs.logger.Warnw("domain association file missing", "file", rs.cfg.FilePath)
			http.NotFound(w, r)
			return
		}
		rs.logger.Errorw("domain association file unreadable", "file", rs.cfg.FilePath, "error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", rs.cfg.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}

	if rs.cfg.Audit {
		rs.audit(r, len(body))
	}
}

func (rs *Responder) audit(r *http.Request, size int) {
	fields := []any{
		"audit_id", uuid.NewString(),
		"at", time.Now().UTC().Format(time.RFC3339Nano),
		"method", r.Method,
		"host", r.Host,
		"remote_addr", r.RemoteAddr,
		"bytes", size,
	}
	for _, h := range auditHeaders {
		if v := r.Header.Get(h); v != "" {
			fields = append(fields, h, v)
		}
	}
	rs.logger.Infow("domain association served", fields...)
}
