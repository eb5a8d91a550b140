package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when an upload-and-analyze cycle begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when the remote service produced a description
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFellBack when all remote attempts failed and a local report was built
	AnalysisFellBack EventType = "analysis_fell_back"
	// AnalysisFailed when the cycle failed before any report could be built
	AnalysisFailed EventType = "analysis_failed"
)

// AnalysisEvent describes one lifecycle event of an analysis cycle.
type AnalysisEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	AnalysisID     string        `json:"analysis_id"`
	FileName       string        `json:"file_name,omitempty"`
	Model          string        `json:"model,omitempty"`
	FailureKind    string        `json:"failure_kind,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"analysis_id":     event.AnalysisID,
		"processing_time": event.ProcessingTime,
	}
	if event.FileName != "" {
		fields["file_name"] = event.FileName
	}
	if event.Model != "" {
		fields["model"] = event.Model
	}
	if event.FailureKind != "" {
		fields["failure_kind"] = event.FailureKind
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Info("Image analysis started")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Image analysis completed")
	case AnalysisFellBack:
		o.logger.WithFields(fields).Warn("Image analysis fell back to local report")
	case AnalysisFailed:
		o.logger.WithFields(fields).Error("Image analysis failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	remoteSuccesses     int64
	fallbackReports     int64
	failedAnalyses      int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.remoteSuccesses++
		o.totalProcessingTime += event.ProcessingTime
	case AnalysisFellBack:
		o.fallbackReports++
		o.totalProcessingTime += event.ProcessingTime
	case AnalysisFailed:
		o.failedAnalyses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	completed := o.remoteSuccesses + o.fallbackReports
	avgProcessingTime := time.Duration(0)
	if completed > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(completed)
	}

	return map[string]interface{}{
		"total_analyses":         o.totalAnalyses,
		"remote_successes":       o.remoteSuccesses,
		"fallback_reports":       o.fallbackReports,
		"failed_analyses":        o.failedAnalyses,
		"avg_processing_time_ms": avgProcessingTime.Milliseconds(),
	}
}

// Publisher fans events out to its subscribers.
type Publisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers an observer.
func (p *Publisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Notify delivers the event to every subscribed observer.
func (p *Publisher) Notify(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, observer := range p.observers {
		observer.OnEvent(ctx, event)
	}
}
