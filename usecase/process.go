package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	domainCache "github.com/shiurnotes/shiurnotes/domains/cache"
	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/shiurnotes/shiurnotes/pkg/guard"
	"github.com/shiurnotes/shiurnotes/pkg/lecturekey"
	"github.com/shiurnotes/shiurnotes/pkg/runmonitor"
	"github.com/shiurnotes/shiurnotes/pkg/sanitize"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
	"github.com/shiurnotes/shiurnotes/validations"
	"github.com/sirupsen/logrus"
)

const (
	msgBusy    = "Server is currently processing another request. Please try again in a moment."
	msgNoMedia = "Could not find MP3 link on the page"
	msgBlocked = "Could not process this audio. The audio may be too long, corrupted, or contain content that cannot be processed."
)

type ProcessConfig struct {
	TempDir string
	// ChunkSize bounds how much of the audio is held in memory at once.
	ChunkSize int
	// Timeout caps a whole cache-miss run. Zero disables the deadline.
	Timeout   time.Duration
	UserAgent string
}

type serviceProcess struct {
	cache      domainCache.IGateway
	guard      *guard.Guard
	resolver   domainLecture.MediaResolver
	generator  domainLecture.Generator
	monitor    *runmonitor.Monitor
	httpClient *http.Client
	cfg        ProcessConfig
}

// NewProcessService wires the pipeline. monitor may be nil.
func NewProcessService(cache domainCache.IGateway, g *guard.Guard, resolver domainLecture.MediaResolver, generator domainLecture.Generator, monitor *runmonitor.Monitor, cfg ProcessConfig) domainLecture.IProcessUsecase {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1024 * 1024
	}
	return &serviceProcess{
		cache:      cache,
		guard:      g,
		resolver:   resolver,
		generator:  generator,
		monitor:    monitor,
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (service serviceProcess) Process(ctx context.Context, request domainLecture.ProcessRequest) (response domainLecture.ProcessResponse, err error) {
	var key, traceID string
	started := time.Now()
	defer func() {
		service.record(request, key, traceID, started, response, err)
	}()

	if err = validations.ValidateProcess(ctx, &request); err != nil {
		return response, err
	}

	key, err = lecturekey.CacheKey(request.URL, string(request.Type))
	if err != nil {
		return response, pkgError.ValidationError("Invalid YUTorah URL format")
	}

	if cached, found := service.cache.Get(ctx, key); found && cached != "" {
		logrus.Infof("[PIPELINE] returning cached %s for key %s", request.Type, key)
		return domainLecture.ProcessResponse{Notes: sanitize.CleanLatex(cached), Cached: true}, nil
	}

	if !service.guard.TryAcquire() {
		logrus.Warnf("[PIPELINE] rejected %s, another request holds the guard", key)
		return response, pkgError.ServiceBusyError(msgBusy)
	}
	defer service.guard.Release()

	traceID = uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"trace_id": traceID, "key": key})

	runCtx := ctx
	if service.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, service.cfg.Timeout)
		defer cancel()
	}

	text, err := service.generate(runCtx, log, traceID, request)
	if err != nil {
		log.WithError(err).Errorf("[PIPELINE] %s failed after %s", request.Type, time.Since(started).Round(time.Millisecond))
		return response, err
	}

	cleaned := sanitize.CleanLatex(text)
	// The deadline only governs external calls; a finished result is still cached.
	if !service.cache.Set(context.WithoutCancel(ctx), key, cleaned) {
		log.Warn("[PIPELINE] result not cached")
	}

	log.Infof("[PIPELINE] generated %s in %s", request.Type, time.Since(started).Round(time.Millisecond))
	return domainLecture.ProcessResponse{Notes: cleaned, Cached: false}, nil
}

// generate runs resolve, download and generation. The temp file never
// outlives this call.
func (service serviceProcess) generate(ctx context.Context, log *logrus.Entry, traceID string, request domainLecture.ProcessRequest) (string, error) {
	mediaURL, err := service.resolver.Resolve(ctx, request.URL)
	if err != nil {
		if errors.Is(err, domainLecture.ErrMediaNotFound) {
			return "", pkgError.NotFoundError(msgNoMedia)
		}
		return "", internalError("resolve lecture page", err)
	}
	log.Infof("[PIPELINE] found audio %s", mediaURL)

	audioPath, err := service.download(ctx, log, traceID, mediaURL)
	if audioPath != "" {
		defer removeTemp(log, audioPath)
	}
	if err != nil {
		return "", internalError("download audio", err)
	}

	text, err := service.generator.Generate(ctx, audioPath, PromptFor(request.Type))
	if err != nil {
		if errors.Is(err, domainLecture.ErrGenerationBlocked) {
			return "", pkgError.GenerationBlockedError(msgBlocked)
		}
		return "", internalError("generate content", err)
	}
	return text, nil
}

// download streams mediaURL into a fresh temp file and returns its path.
// The path is returned even on failure so the caller can remove it.
func (service serviceProcess) download(ctx context.Context, log *logrus.Entry, traceID string, mediaURL string) (string, error) {
	if err := utils.CreateFolder(service.cfg.TempDir); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(service.cfg.TempDir, "shiur-"+traceID+"-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	written, err := service.fetchTo(ctx, mediaURL, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return path, err
	}

	log.Infof("[PIPELINE] downloaded %s to %s", humanize.Bytes(uint64(written)), path)
	return path, nil
}

func (service serviceProcess) fetchTo(ctx context.Context, mediaURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return 0, err
	}
	if service.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", service.cfg.UserAgent)
	}

	resp, err := service.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, mediaURL)
	}

	buf := make([]byte, service.cfg.ChunkSize)
	var written int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

func (service serviceProcess) Normalize(ctx context.Context, rawURL string) (domainLecture.NormalizeResponse, error) {
	if err := validations.ValidateLectureURL(ctx, rawURL); err != nil {
		return domainLecture.NormalizeResponse{}, err
	}

	id, err := lecturekey.ExtractID(rawURL)
	if err != nil {
		return domainLecture.NormalizeResponse{}, pkgError.ValidationError("Invalid YUTorah URL format")
	}
	canonical, _ := lecturekey.CanonicalURL(rawURL)
	key, _ := lecturekey.CacheKey(rawURL, string(domainLecture.KindNotes))

	return domainLecture.NormalizeResponse{ID: id, URL: canonical, NotesKey: key}, nil
}

func (service serviceProcess) record(request domainLecture.ProcessRequest, key, traceID string, started time.Time, response domainLecture.ProcessResponse, err error) {
	if service.monitor == nil {
		return
	}

	event := runmonitor.Event{
		TraceID:    traceID,
		Key:        key,
		Kind:       string(request.Type),
		Status:     http.StatusOK,
		DurationMs: time.Since(started).Milliseconds(),
	}

	switch {
	case err == nil && response.Cached:
		event.Outcome = runmonitor.OutcomeCacheHit
	case err == nil:
		event.Outcome = runmonitor.OutcomeGenerated
	default:
		event.Error = err.Error()
		event.Status = http.StatusInternalServerError
		var generic pkgError.GenericError
		if errors.As(err, &generic) {
			event.Status = generic.StatusCode()
		}
		switch event.Status {
		case http.StatusServiceUnavailable:
			event.Outcome = runmonitor.OutcomeRejected
		case http.StatusBadRequest:
			event.Outcome = runmonitor.OutcomeInvalid
		default:
			event.Outcome = runmonitor.OutcomeFailed
		}
	}

	service.monitor.Record(event)
}

func removeTemp(log *logrus.Entry, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warnf("[PIPELINE] failed to remove temp file %s", path)
	}
}

func internalError(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgError.InternalServerError(fmt.Sprintf("Processing timed out during %s", stage))
	}
	return pkgError.InternalServerError(fmt.Sprintf("Failed to %s: %v", stage, err))
}
