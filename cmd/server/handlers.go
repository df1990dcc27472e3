package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/metrics"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/config"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/kgram"
	"github.com/baditaflorin/go_document_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_document_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
	"github.com/baditaflorin/go_document_similarity/internal/warmup"
)

const (
	requestIDHeader = "X-Request-ID"
	requestTimeout  = 30 * time.Second
)

// SimilarityRequest is the body of POST /similarity.
type SimilarityRequest struct {
	Original  string   `json:"original"`
	Augmented string   `json:"augmented"`
	Algorithm string   `json:"algorithm,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// KGramRequest is the body of POST /kgram.
type KGramRequest struct {
	Original  string   `json:"original"`
	Augmented string   `json:"augmented"`
	K         int      `json:"k,omitempty"`
	Normalize bool     `json:"normalize,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// FrequenciesRequest is the body of POST /frequencies.
type FrequenciesRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// Response represents a similarity computation response.
type Response struct {
	Name           string                 `json:"name"`
	Score          float64                `json:"score"`
	Passed         bool                   `json:"passed"`
	Threshold      float64                `json:"threshold"`
	Algorithm      string                 `json:"algorithm,omitempty"`
	OriginalTerms  int                    `json:"original_terms"`
	AugmentedTerms int                    `json:"augmented_terms"`
	ProcessingTime string                 `json:"processing_time"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// FrequenciesResponse lists the word counts of one text.
type FrequenciesResponse struct {
	Algorithm   string         `json:"algorithm"`
	Mode        string         `json:"mode"`
	Total       int            `json:"total"`
	Frequencies map[string]int `json:"frequencies"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the shared state of the HTTP handlers.
type Server struct {
	cfg        config.Config
	logger     ports.Logger
	normalizer ports.Normalizer
	metrics    *metrics.Recorder
	timeout    time.Duration
}

// NewServer creates the handlers for the given configuration.
func NewServer(cfg config.Config, logger ports.Logger, recorder *metrics.Recorder) (*Server, error) {
	normType, err := normalizer.ParseNormalizerType(cfg.Normalizer)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:        cfg,
		logger:     logger,
		normalizer: normalizer.NewNormalizerFactory().CreateNormalizer(normType),
		metrics:    recorder,
		timeout:    requestTimeout,
	}, nil
}

// WarmUp runs every matcher and the default calculators before traffic arrives.
func (s *Server) WarmUp(ctx context.Context, wc warmup.Config) warmup.Stats {
	mgr := warmup.NewManager(s.logger, wc)
	mgr.RegisterNormalizer(s.normalizer)
	for _, alg := range []domain.Algorithm{domain.KMP, domain.BoyerMoore} {
		if m, err := matcher.New(alg); err == nil {
			mgr.RegisterMatcher(m)
		}
		if c, err := s.overlapCalculator(string(alg), "", nil); err == nil {
			mgr.RegisterCalculator(c)
		}
	}
	if c, err := s.kgramCalculator(0, s.cfg.KGram.Normalize, nil); err == nil {
		mgr.RegisterCalculator(c)
	}
	return mgr.WarmUp(ctx)
}

// Handler returns the routing request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.requestHandler
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)
	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/similarity":
		s.handleSimilarity(ctx)
	case "/kgram":
		s.handleKGram(ctx)
	case "/frequencies":
		s.handleFrequencies(ctx)
	case "/metrics":
		s.handleMetrics(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *Server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	s.metrics.Handler()(ctx)
}

func (s *Server) handleSimilarity(ctx *fasthttp.RequestCtx) {
	const metric = "overlap"

	var req SimilarityRequest
	if !s.decodePost(ctx, metric, &req) {
		return
	}
	if req.Original == "" || req.Augmented == "" {
		s.reject(ctx, metric, "Both original and augmented texts are required")
		return
	}

	calc, err := s.overlapCalculator(req.Algorithm, req.Mode, req.Threshold)
	if err != nil {
		s.reject(ctx, metric, err.Error())
		return
	}
	s.compute(ctx, metric, calc, req.Original, req.Augmented)
}

func (s *Server) handleKGram(ctx *fasthttp.RequestCtx) {
	const metric = "kgram"

	var req KGramRequest
	if !s.decodePost(ctx, metric, &req) {
		return
	}
	if req.Original == "" || req.Augmented == "" {
		s.reject(ctx, metric, "Both original and augmented texts are required")
		return
	}

	calc, err := s.kgramCalculator(req.K, req.Normalize, req.Threshold)
	if err != nil {
		s.reject(ctx, metric, err.Error())
		return
	}
	s.compute(ctx, metric, calc, req.Original, req.Augmented)
}

func (s *Server) handleFrequencies(ctx *fasthttp.RequestCtx) {
	const metric = "frequencies"

	var req FrequenciesRequest
	if !s.decodePost(ctx, metric, &req) {
		return
	}

	calc, err := s.overlapCalculator(req.Algorithm, req.Mode, nil)
	if err != nil {
		s.reject(ctx, metric, err.Error())
		return
	}
	c, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	freq, err := calc.FrequenciesContext(c, req.Text)
	if err != nil {
		s.metrics.ObserveFailure(metric)
		ctx.SetStatusCode(statusFor(err))
		s.writeJSONError(ctx, err.Error())
		return
	}

	cfg := calc.Config()
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, FrequenciesResponse{
		Algorithm:   string(cfg.Algorithm),
		Mode:        string(cfg.Mode),
		Total:       freq.Total(),
		Frequencies: freq,
	})
}

func (s *Server) compute(ctx *fasthttp.RequestCtx, metric string, calc ports.SimilarityCalculator, original, augmented string) {
	c, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := calc.Compute(c, original, augmented)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveFailure(metric)
		ctx.SetStatusCode(statusFor(err))
		s.writeJSONError(ctx, err.Error())
		return
	}
	s.metrics.ObserveComparison(metric, string(result.Algorithm), result.Score, elapsed)

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, Response{
		Name:           result.Name,
		Score:          result.Score,
		Passed:         result.Passed,
		Threshold:      result.Threshold,
		Algorithm:      string(result.Algorithm),
		OriginalTerms:  result.OriginalTerms,
		AugmentedTerms: result.AugmentedTerms,
		ProcessingTime: elapsed.String(),
		Details:        result.Details,
	})
}

// statusFor maps a computation error to a response status.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fasthttp.StatusGatewayTimeout
	}
	return fasthttp.StatusInternalServerError
}

func (s *Server) overlapCalculator(algorithm, mode string, threshold *float64) (*overlap.Calculator, error) {
	cfg := overlap.SimilarityConfig{
		Algorithm: s.cfg.Algorithm,
		Mode:      s.cfg.CountingMode,
		Threshold: s.cfg.Threshold,
	}
	if algorithm != "" {
		cfg.Algorithm = domain.Algorithm(algorithm)
	}
	if mode != "" {
		cfg.Mode = domain.CountingMode(mode)
	}
	if threshold != nil {
		cfg.Threshold = *threshold
	}
	return overlap.NewCalculator(cfg, s.logger, s.normalizer)
}

func (s *Server) kgramCalculator(k int, normalize bool, threshold *float64) (*kgram.Calculator, error) {
	cfg := kgram.SimilarityConfig{
		Size:      s.cfg.KGram.Size,
		Normalize: normalize,
		Threshold: s.cfg.Threshold,
	}
	if k != 0 {
		cfg.Size = k
	}
	if threshold != nil {
		cfg.Threshold = *threshold
	}
	return kgram.NewCalculator(cfg, s.logger, s.normalizer)
}

// decodePost enforces POST and decodes the JSON body into v. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) decodePost(ctx *fasthttp.RequestCtx, metric string, v interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		s.reject(ctx, metric, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func (s *Server) reject(ctx *fasthttp.RequestCtx, metric, message string) {
	s.metrics.ObserveFailure(metric)
	ctx.SetStatusCode(fasthttp.StatusBadRequest)
	s.writeJSONError(ctx, message)
}

// writeJSONResponse writes a JSON response to the context
func (s *Server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}
