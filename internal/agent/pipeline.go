package agent

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/classify"
	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// noiseFiles are OS artifacts never worth reporting.
var noiseFiles = map[string]struct{}{
	"desktop.ini": {},
	"thumbs.db":   {},
	".ds_store":   {},
}

// plantedCacheSize bounds the suppression cache. One entry per directory
// that ever received a decoy, so even a small cap is generous.
const plantedCacheSize = 1024

// Pipeline processes filesystem notifications sequentially: filter, build
// the event, classify locally, forward, then decide on decoy deployment.
// The local classification is advisory only; the collector re-classifies
// authoritatively.
type Pipeline struct {
	classifier *classify.Classifier
	decoy      *DecoyController
	forwarder  Forwarder
	logger     *zap.Logger
	user       string

	// planted remembers decoy paths written by this process so their own
	// Created notifications are not reported as fresh alerts.
	planted *lru.Cache[string, struct{}]

	// now is swappable in tests.
	now func() time.Time
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(cl *classify.Classifier, decoy *DecoyController, fwd Forwarder, user string, logger *zap.Logger) (*Pipeline, error) {
	planted, err := lru.New[string, struct{}](plantedCacheSize)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		classifier: cl,
		decoy:      decoy,
		forwarder:  fwd,
		logger:     logger,
		user:       user,
		planted:    planted,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// Run consumes notifications until the channel closes or ctx is canceled.
func (p *Pipeline) Run(ctx context.Context, notifications <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			p.Handle(ctx, n)
		}
	}
}

// Handle processes one notification end to end. Nothing in here may panic
// or crash the loop; every failure is logged and the next notification
// proceeds.
func (p *Pipeline) Handle(ctx context.Context, n Notification) {
	if n.Kind == KindModified && n.IsDir {
		return
	}

	fileName := filepath.Base(n.Path)
	if _, noisy := noiseFiles[strings.ToLower(fileName)]; noisy {
		return
	}

	if n.Kind == KindCreated {
		if _, ours := p.planted.Get(n.Path); ours {
			p.logger.Info("decoy planted, ignoring its created notification",
				zap.String("path", n.Path))
			return
		}
	}

	event := models.NewEvent(actionFor(n.Kind), n.Path, p.user, p.now())
	level := p.classifier.Classify(event.FileName, event.CapturedAt)

	if err := p.forwarder.Forward(ctx, event); err != nil {
		p.logger.Warn("failed to forward event, dropping",
			zap.String("file", event.FileName), zap.Error(err))
	} else {
		p.logger.Info("alert forwarded",
			zap.String("action", string(event.Action)),
			zap.String("path", event.FilePath),
			zap.String("user", event.User),
			zap.String("local_level", level.String()),
		)
	}

	// Loop prevention: activity on an existing decoy never plants another.
	if level > classify.Normal && !classify.IsDecoyName(event.FileName) {
		if path, created := p.decoy.MaybeDeploy(filepath.Dir(n.Path)); created {
			p.planted.Add(path, struct{}{})
		}
	}
}

func actionFor(kind Kind) models.Action {
	switch kind {
	case KindCreated:
		return models.ActionCreated
	case KindDeleted:
		return models.ActionDeleted
	default:
		return models.ActionModified
	}
}
