package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/logstat/internal/crawler"
	"github.com/nao1215/logstat/internal/model"
)

// ErrFinalized is returned by Fold and Finalize once the report has been finalized.
var ErrFinalized = errors.New("aggregator already finalized")

// State is the lifecycle state of an Aggregator.
type State int

const (
	// StateAccumulating accepts Fold calls.
	StateAccumulating State = iota

	// StateFinalized holds a frozen report; no further Fold calls are valid.
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Aggregator owns the running statistics of one access log.
type Aggregator struct {
	classifier *crawler.Classifier
	urls       URLSet
	report     *model.LogReport
	state      State
}

// NewAggregator creates an Aggregator in the accumulating state.
// The report's crawler counts are seeded from the classifier's names.
// The Aggregator does not close urls; the caller owns it.
func NewAggregator(classifier *crawler.Classifier, urls URLSet) *Aggregator {
	return &Aggregator{
		classifier: classifier,
		urls:       urls,
		report:     model.NewLogReport(classifier.Names()),
		state:      StateAccumulating,
	}
}

// State returns the current lifecycle state.
func (a *Aggregator) State() State {
	return a.state
}

// Fold adds one record to the statistics.
func (a *Aggregator) Fold(ctx context.Context, rec model.AccessRecord) error {
	if a.state != StateAccumulating {
		return ErrFinalized
	}

	if err := a.urls.Add(ctx, rec.RequestPath); err != nil {
		return fmt.Errorf("failed to record request path: %w", err)
	}

	a.report.Views++

	count := a.report.StatusCodes[rec.StatusCode]
	a.report.StatusCodes[rec.StatusCode] = count + 1

	if model.IsSuccess(rec.StatusCode) {
		a.report.Traffic += rec.BytesSent
	}

	if name, ok := a.classifier.Classify(rec.UserAgent); ok {
		a.report.Crawlers[name]++
	}

	return nil
}

// Finalize sets the distinct URL count, freezes the Aggregator and returns the report.
// It may succeed only once.
func (a *Aggregator) Finalize(ctx context.Context) (*model.LogReport, error) {
	if a.state != StateAccumulating {
		return nil, ErrFinalized
	}

	n, err := a.urls.Len(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct request paths: %w", err)
	}

	a.report.URLs = n
	a.state = StateFinalized

	return a.report, nil
}
