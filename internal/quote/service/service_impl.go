package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jacobe603/quote-builder/internal/config"
	"github.com/jacobe603/quote-builder/internal/logger"
	"github.com/jacobe603/quote-builder/internal/observability/metrics"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/jacobe603/quote-builder/internal/quote/pricing"
	"github.com/jacobe603/quote-builder/internal/quote/tree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     quotedomain.Repository
	Defaults *config.QuoteDefaultsHolder `optional:"true"`
	Metrics  *metrics.QuoteMetrics       `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     quotedomain.Repository
	defaults *config.QuoteDefaultsHolder
	metrics  *metrics.QuoteMetrics
	tracer   trace.Tracer

	// mu serializes writers; readers load the published snapshot directly.
	mu sync.Mutex
}

func New(p Params) quotedomain.Service {
	return &Service{
		log:      p.Log.Named("quote.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
		metrics:  p.Metrics,
		tracer:   otel.Tracer("quote.service"),
	}
}

func (s *Service) Snapshot(ctx context.Context) (*quotedomain.Snapshot, error) {
	return s.repo.Load(ctx)
}

func (s *Service) View(ctx context.Context) (*quotedomain.QuoteView, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return tree.View(snap), nil
}

func (s *Service) Totals(ctx context.Context) (*quotedomain.Rollup, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.Rollup(snap), nil
}

func (s *Service) UpdateProjectInfo(ctx context.Context, info quotedomain.ProjectInfo) (*quotedomain.Snapshot, error) {
	return s.mutate(ctx, "update_project_info", nil, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		return tree.UpdateProjectInfo(cur, info), nil
	})
}

func (s *Service) AddPackage(ctx context.Context, req quotedomain.AddPackageRequest) (*quotedomain.Package, error) {
	markup := s.quoteDefaults().NewPackage.DefaultMarkup
	if req.DefaultMarkup != nil {
		markup = *req.DefaultMarkup
	}

	var created quotedomain.Package
	_, err := s.mutate(ctx, "add_package", nil, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, pkg, err := tree.AddPackage(cur, s.newID(), req.Name, markup)
		created = pkg
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdatePackage(ctx context.Context, id string, req quotedomain.UpdatePackageRequest) (*quotedomain.Package, error) {
	var updated quotedomain.Package
	_, err := s.mutate(ctx, "update_package", []zap.Field{zap.String("package_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, pkg, err := tree.UpdatePackage(cur, id, req)
		updated = pkg
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeletePackage(ctx context.Context, id string) (*quotedomain.Snapshot, error) {
	return s.mutate(ctx, "delete_package", []zap.Field{zap.String("package_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		if _, ok := tree.NewIndex(cur).Package(id); !ok {
			return cur, quotedomain.ErrPackageNotFound
		}
		return tree.DeleteContainer(cur, id)
	})
}

func (s *Service) MovePackage(ctx context.Context, id string, ordinal int) (*quotedomain.Snapshot, error) {
	fields := []zap.Field{zap.String("package_id", id), zap.Int("ordinal", ordinal)}
	return s.mutate(ctx, "move_package", fields, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		return tree.MovePackage(cur, id, ordinal)
	})
}

func (s *Service) AddGroup(ctx context.Context, packageID string, req quotedomain.AddGroupRequest) (*quotedomain.Group, error) {
	var created quotedomain.Group
	_, err := s.mutate(ctx, "add_group", []zap.Field{zap.String("package_id", packageID)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, g, err := tree.AddGroup(cur, s.newID(), packageID, req.Name)
		created = g
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateGroup(ctx context.Context, id string, req quotedomain.UpdateGroupRequest) (*quotedomain.Group, error) {
	var updated quotedomain.Group
	_, err := s.mutate(ctx, "update_group", []zap.Field{zap.String("group_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, g, err := tree.UpdateGroup(cur, id, req)
		updated = g
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteGroup(ctx context.Context, id string) (*quotedomain.Snapshot, error) {
	return s.mutate(ctx, "delete_group", []zap.Field{zap.String("group_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		if !cur.Grouped() {
			return cur, quotedomain.ErrVariantUnsupported
		}
		if _, ok := tree.NewIndex(cur).Group(id); !ok {
			return cur, quotedomain.ErrGroupNotFound
		}
		return tree.DeleteContainer(cur, id)
	})
}

func (s *Service) AddPrimaryLine(ctx context.Context, containerID string) (*quotedomain.LineItem, error) {
	var created quotedomain.LineItem
	_, err := s.mutate(ctx, "add_primary_line", []zap.Field{zap.String("container_id", containerID)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, li, err := tree.AddPrimaryLine(cur, s.newID(), containerID, s.treeDefaults(false))
		created = li
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) AddSubLine(ctx context.Context, parentID string) (*quotedomain.LineItem, error) {
	var created quotedomain.LineItem
	_, err := s.mutate(ctx, "add_sub_line", []zap.Field{zap.String("line_item_id", parentID)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, li, err := tree.AddSubLine(cur, s.newID(), parentID, s.treeDefaults(true))
		created = li
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateLineItem(ctx context.Context, id string, req quotedomain.UpdateLineItemRequest) (*quotedomain.LineItem, error) {
	var updated quotedomain.LineItem
	_, err := s.mutate(ctx, "update_line_item", []zap.Field{zap.String("line_item_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		next, li, err := tree.UpdateLineItem(cur, id, req)
		updated = li
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteLineItem(ctx context.Context, id string) (*quotedomain.Snapshot, error) {
	return s.mutate(ctx, "delete_line_item", []zap.Field{zap.String("line_item_id", id)}, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		return tree.DeleteLineItem(cur, id)
	})
}

func (s *Service) MoveLineItem(ctx context.Context, id string, address string) (*quotedomain.Snapshot, error) {
	fields := []zap.Field{zap.String("line_item_id", id), zap.String("address", address)}
	return s.mutate(ctx, "move_line_item", fields, func(cur *quotedomain.Snapshot) (*quotedomain.Snapshot, error) {
		return tree.MoveLineItem(cur, id, address)
	})
}

// mutate runs one structural operation against the current snapshot and
// publishes its result. A rejected operation returns the unchanged snapshot
// together with the error.
func (s *Service) mutate(ctx context.Context, op string, fields []zap.Field, fn func(*quotedomain.Snapshot) (*quotedomain.Snapshot, error)) (*quotedomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "quote."+op)
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.repo.Load(ctx)
	if err != nil {
		s.fail(ctx, span, op, start, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("quote.version", int64(cur.Version)))

	next, err := fn(cur)
	if err != nil {
		reason := quotedomain.Code(err)
		logger.WithContext(ctx, s.log).Warn("quote operation rejected",
			append(fields,
				zap.String("operation", op),
				zap.String("reason", reason),
				zap.Error(err),
			)...,
		)
		span.SetAttributes(attribute.String("quote.rejected", reason))
		s.metrics.Reject(op, reason)
		s.metrics.ObserveOperation(op, metrics.ResultRejected, time.Since(start))
		return cur, err
	}

	if next == cur {
		s.metrics.ObserveOperation(op, metrics.ResultNoop, time.Since(start))
		return cur, nil
	}

	if err := s.repo.Publish(ctx, cur, next); err != nil {
		s.fail(ctx, span, op, start, err)
		return cur, err
	}

	s.metrics.Published(next.Version, len(next.LineItems))
	s.metrics.ObserveOperation(op, metrics.ResultApplied, time.Since(start))
	logger.WithContext(ctx, s.log).Debug("quote operation applied",
		append(fields,
			zap.String("operation", op),
			zap.Uint64("version", next.Version),
		)...,
	)
	return next, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.metrics.ObserveOperation(op, metrics.ResultFailed, time.Since(start))

	log := logger.WithContext(ctx, s.log)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn("quote operation aborted", zap.String("operation", op), zap.Error(err))
		return
	}
	log.Error("quote operation failed", zap.String("operation", op), zap.Error(err))
}

func (s *Service) newID() string {
	return s.genID.Generate().String()
}

func (s *Service) quoteDefaults() config.QuoteDefaults {
	if s.defaults == nil {
		return config.DefaultQuoteDefaults()
	}
	return s.defaults.Get()
}

func (s *Service) treeDefaults(sub bool) tree.Defaults {
	d := s.quoteDefaults()
	qty := d.NewLine.Quantity
	if sub {
		qty = d.NewSubLine.Quantity
	}
	return tree.Defaults{
		Markup:           d.DefaultMarkup,
		Quantity:         qty,
		LineShorthand:    d.NewLine.Shorthand,
		SubLineShorthand: d.NewSubLine.Shorthand,
	}
}
