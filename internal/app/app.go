package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/shoe-store/config"
	"github.com/niksmo/shoe-store/internal/adapter"
	"github.com/niksmo/shoe-store/internal/adapter/dummyjson"
	"github.com/niksmo/shoe-store/internal/adapter/httphandler"
	"github.com/niksmo/shoe-store/internal/adapter/kafka"
	"github.com/niksmo/shoe-store/internal/core/port"
	"github.com/niksmo/shoe-store/internal/core/service"
	"github.com/niksmo/shoe-store/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	catalogSource    port.CatalogSource
	cartEvtsProducer *kafka.CartEventsProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsCfg     *tls.Config
	outbound   outbound
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTLS()
	app.initCatalogSource()
	app.initCartEventsProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	t := app.cfg.Broker.TLS
	tlsCfg, err := adapter.MakeTLSConfig(t.CAFile, t.CertFile, t.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsCfg = tlsCfg
}

func (app *App) initCatalogSource() {
	const op = "App.initCatalogSource"

	c := app.cfg.Catalog
	cl, err := dummyjson.NewClient(
		dummyjson.BaseURLOpt(c.BaseURL),
		dummyjson.TimeoutOpt(c.RequestTimeout),
		dummyjson.MaxAttemptsOpt(c.MaxAttempts),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.catalogSource = cl
}

func (app *App) initCartEventsProducer() {
	const op = "App.initCartEventsProducer"
	log := slog.With("op", op)

	if !app.cfg.BrokerEnabled() {
		log.Info("seed brokers are not set, cart events are disabled")
		return
	}

	ctx := app.ctx
	b := app.cfg.Broker

	srOpts := []sr.ClientOpt{sr.URLs(b.SchemaRegistryURLs...)}
	if app.tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsCfg))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	cartEventSerde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(b.Topics.CartEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			ctx, b.SeedBrokers, b.Topics.CartEvents, app.tlsCfg,
		),
		kafka.ProducerEncoderOpt(cartEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.cartEvtsProducer = &producer
}

func (app *App) initCoreService() {
	catalog := service.NewCatalogStore(
		app.outbound.catalogSource, app.cfg.Catalog.Categories,
	)

	var cartEvtsProducer port.CartEventsProducer
	if app.outbound.cartEvtsProducer != nil {
		cartEvtsProducer = app.outbound.cartEvtsProducer
	}

	app.service = service.New(catalog, service.NewCartStore(), cartEvtsProducer)
}

func (app *App) initInboundAdapters() {
	router := httphandler.NewRouter(app.ctx, app.service)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, router)
}

// Run starts the first catalog fetch and the http server. Products are
// served while the fetch is in flight.
func (app *App) Run(stopFn context.CancelFunc) {
	const op = "App.Run"
	log := slog.With("op", op)

	go func() {
		if err := app.service.FetchCatalog(app.ctx); err != nil {
			log.Error("initial catalog fetch failed", "err", err)
			return
		}
		log.Info("catalog is loaded",
			"products", len(app.service.Catalog().Products))
	}()

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.outbound.cartEvtsProducer != nil {
		app.outbound.cartEvtsProducer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
