package core

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kaushikharsh25/sbms/metrics"
	handler "github.com/kaushikharsh25/sbms/module/core/internal/handler/http"
	"github.com/kaushikharsh25/sbms/module/core/internal/handler/subscriber"
	redicache "github.com/kaushikharsh25/sbms/module/core/internal/repository/cache/redis"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database/postgres"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/publisher/rabbitmq"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing/googlemaps"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing/mapbox"
	"github.com/kaushikharsh25/sbms/module/core/service"
)

// Options carries the tunables the core needs beyond its connections.
type Options struct {
	// ProviderOrder fixes the trial priority of routing providers at
	// startup. A provider with a missing credential stays in the chain
	// and reports itself unavailable; its fallback then answers.
	ProviderOrder     []string
	GoogleMapsAPIKey  string
	MapboxAccessToken string
	ProviderTimeout   time.Duration
	EtaCacheTTL       time.Duration
	ArrivalRadiusM    float64
	Metrics           *metrics.Collector
}

type Module struct {
	LocationSvc *service.LocationService
	EtaSvc      *service.EtaService
	ArrivalSvc  *service.ArrivalService

	locationHandler *handler.LocationHandler
	etaHandler      *handler.EtaHandler
	subscriber      *subscriber.LocationSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, rdb *goredis.Client, opts Options) (*Module, error) {
	positionRepo := postgres.NewPositionRepo(db)
	registryRepo := postgres.NewRegistryRepo(db)

	arrivalPub, err := rabbitmq.NewArrivalPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("arrival publisher: %w", err)
	}

	providers := buildProviders(opts)
	if len(providers) == 0 {
		return nil, fmt.Errorf("no known eta providers in order %v", opts.ProviderOrder)
	}

	var chainObs routing.Observer
	if opts.Metrics != nil {
		chainObs = opts.Metrics
	}
	var provider routing.Provider = routing.NewChain(providers, opts.ProviderTimeout, chainObs)
	if rdb != nil {
		provider = routing.WithCache(provider, redicache.NewEtaCache(rdb), opts.EtaCacheTTL, chainObs)
	}

	var ingestMetrics service.IngestMetrics
	var etaMetrics service.EtaMetrics
	var arrivalMetrics service.ArrivalMetrics
	if opts.Metrics != nil {
		ingestMetrics = opts.Metrics
		etaMetrics = opts.Metrics
		arrivalMetrics = opts.Metrics
	}

	locationSvc := service.NewLocationService(positionRepo, registryRepo, ingestMetrics)
	etaSvc := service.NewEtaService(registryRepo, positionRepo, provider, etaMetrics)
	arrivalSvc := service.NewArrivalService(arrivalPub, registryRepo, opts.ArrivalRadiusM, arrivalMetrics)

	return &Module{
		LocationSvc:     locationSvc,
		EtaSvc:          etaSvc,
		ArrivalSvc:      arrivalSvc,
		locationHandler: handler.NewLocationHandler(locationSvc, arrivalSvc),
		etaHandler:      handler.NewEtaHandler(etaSvc),
		subscriber:      subscriber.NewLocationSubscriber(mqttClient, locationSvc, arrivalSvc),
	}, nil
}

func buildProviders(opts Options) []routing.Provider {
	var providers []routing.Provider
	for _, name := range opts.ProviderOrder {
		switch name {
		case "googlemaps":
			providers = append(providers, googlemaps.New(opts.GoogleMapsAPIKey))
		case "mapbox":
			providers = append(providers, mapbox.New(opts.MapboxAccessToken))
		default:
			log.Printf("unknown eta provider %q, skipping", name)
		}
	}
	return providers
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.locationHandler.Register(r)
	m.etaHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
