package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kaushikharsh25/sbms/config"
	"github.com/kaushikharsh25/sbms/metrics"
	"github.com/kaushikharsh25/sbms/module/core"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	rdb, err := config.NewRedis(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer func() { _ = rdb.Close() }()

	collector := metrics.NewCollector()

	coreModule, err := core.Build(db, amqpConn, mqttClient, rdb, core.Options{
		ProviderOrder:     cfg.ProviderOrder,
		GoogleMapsAPIKey:  cfg.GoogleMapsAPIKey,
		MapboxAccessToken: cfg.MapboxAccessToken,
		ProviderTimeout:   cfg.ProviderTimeout,
		EtaCacheTTL:       cfg.EtaCacheTTL,
		ArrivalRadiusM:    cfg.ArrivalRadiusM,
		Metrics:           collector,
	})
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient, rdb)
	health.Register(r)
	r.GET("/metrics", gin.WrapH(collector.Handler()))

	api := r.Group("/api")
	coreModule.RegisterRoutes(api)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
