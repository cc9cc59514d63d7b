package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sells-group/mowradar/internal/config"
	"github.com/sells-group/mowradar/internal/cost"
	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/internal/prompt"
	"github.com/sells-group/mowradar/internal/recommend"
)

const tracerName = "github.com/sells-group/mowradar/internal/pipeline"

// Pipeline turns an address and customer attributes into a sales pitch:
// resolve, weather, recommend, prompt, narrate, cost.
type Pipeline struct {
	cfg      *config.Config
	resolver LocationResolver
	weather  WeatherContext
	narrator NarrationClient
	costCalc *cost.Calculator
	tracer   trace.Tracer
	newID    func() string
}

// New creates a new Pipeline with all dependencies. narrator may be nil
// when only Preview is used.
func New(
	cfg *config.Config,
	resolver LocationResolver,
	weather WeatherContext,
	narrator NarrationClient,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		resolver: resolver,
		weather:  weather,
		narrator: narrator,
		costCalc: cost.NewCalculator(cost.Merge(cost.DefaultRates(), pricingRates(cfg.Pricing))),
		tracer:   otel.Tracer(tracerName),
		newID:    func() string { return uuid.New().String() },
	}
}

func pricingRates(p config.PricingConfig) cost.Rates {
	rates := cost.Rates{Models: make(map[string]cost.ModelRate, len(p.Models))}
	for name, m := range p.Models {
		rates.Models[name] = cost.ModelRate{Input: m.Input, Output: m.Output}
	}
	return rates
}

// Run executes every stage for one request. The first failing stage aborts
// the run and no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, req model.PitchRequest) (*model.PitchResult, error) {
	if p.narrator == nil {
		return nil, eris.New("pipeline: no narration client configured")
	}

	result, log := p.begin(req)
	ctx, span := p.startSpan(ctx, "pipeline.run", result.RequestID)
	defer span.End()

	if err := p.prepare(ctx, log, req, result); err != nil {
		return nil, err
	}

	narration := p.cfg.Narration
	err := p.stage(ctx, log, StageNarrate, func(ctx context.Context) error {
		n, genErr := p.narrator.Generate(ctx, result.Prompt, narration.Model, narration.Temperature, narration.MaxTokens)
		if genErr != nil {
			return genErr
		}
		result.Narration = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = p.stage(ctx, log, StageCost, func(context.Context) error {
		n := result.Narration
		result.EstimatedCostUSD = p.costCalc.Estimate(n.Model, n.PromptTokens, n.CompletionTokens)
		if _, ok := p.costCalc.Rate(n.Model); !ok {
			log.Debug("pipeline: no pricing for model", zap.String("model", n.Model))
		}
		return nil
	})

	pitchesGenerated.Inc()
	log.Info("pipeline: pitch generated",
		zap.Strings("services", model.ServiceNames(result.Services)),
		zap.Int64("total_tokens", result.Narration.TotalTokens),
		zap.Float64("cost_usd", result.EstimatedCostUSD),
	)
	return result, nil
}

// Preview runs every stage except narration and returns the prompt that
// would be sent.
func (p *Pipeline) Preview(ctx context.Context, req model.PitchRequest) (*model.PitchResult, error) {
	result, log := p.begin(req)
	ctx, span := p.startSpan(ctx, "pipeline.preview", result.RequestID)
	defer span.End()

	if err := p.prepare(ctx, log, req, result); err != nil {
		return nil, err
	}
	log.Info("pipeline: preview built", zap.Strings("services", model.ServiceNames(result.Services)))
	return result, nil
}

func (p *Pipeline) begin(req model.PitchRequest) (*model.PitchResult, *zap.Logger) {
	result := &model.PitchResult{RequestID: p.newID()}
	log := zap.L().With(zap.String("request_id", result.RequestID))
	log.Info("pipeline: starting", zap.String("query", req.Query), zap.String("tone", string(req.Attributes.Tone)))
	return result, log
}

func (p *Pipeline) startSpan(ctx context.Context, name, requestID string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("request_id", requestID)))
}

// prepare runs resolve, weather, recommend and prompt, filling result.
func (p *Pipeline) prepare(ctx context.Context, log *zap.Logger, req model.PitchRequest, result *model.PitchResult) error {
	err := p.stage(ctx, log, StageResolve, func(ctx context.Context) error {
		place, resolveErr := p.resolver.Resolve(ctx, req.Query)
		if resolveErr != nil {
			return resolveErr
		}
		result.Place = *place
		return nil
	})
	if err != nil {
		return err
	}

	err = p.stage(ctx, log, StageWeather, func(ctx context.Context) error {
		snap, weatherErr := p.weather.Fetch(ctx, result.Place.Latitude, result.Place.Longitude)
		if weatherErr != nil {
			return weatherErr
		}
		result.Weather = *snap
		return nil
	})
	if err != nil {
		return err
	}

	_ = p.stage(ctx, log, StageRecommend, func(context.Context) error {
		result.Services = recommend.Recommend(result.Weather, req.Attributes)
		log.Debug("pipeline: rules fired", zap.Strings("rules", recommend.Explain(result.Weather)))
		return nil
	})

	_ = p.stage(ctx, log, StagePrompt, func(context.Context) error {
		result.Prompt = prompt.Build(result.Place, result.Weather, result.Services, req.Attributes)
		return nil
	})

	return nil
}

// stage times fn and records its outcome in logs, metrics and a span.
func (p *Pipeline) stage(ctx context.Context, log *zap.Logger, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	stageDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		kind := Kind(err)
		stageFailures.WithLabelValues(name, kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		log.Error("pipeline: stage failed",
			zap.String("stage", name),
			zap.String("kind", kind),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.Error(err),
		)
		return err
	}

	log.Debug("pipeline: stage complete",
		zap.String("stage", name),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	)
	return nil
}
