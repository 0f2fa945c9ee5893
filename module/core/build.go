package core

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	handler "github.com/nandanugg/tourist-safety/module/core/internal/handler/http"
	"github.com/nandanugg/tourist-safety/module/core/internal/handler/subscriber"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/cache/redis"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database/postgres"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/tourist-safety/module/core/service"
	"github.com/nandanugg/tourist-safety/observability"
)

type Deps struct {
	DB          *sql.DB
	AMQP        *amqp.Connection
	MQTT        mqtt.Client
	Redis       *goredis.Client
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	LocationTTL time.Duration
}

type Module struct {
	LocationSvc     *service.LocationService
	GeofenceSvc     *service.GeofenceService
	AlertSvc        *service.AlertService
	touristHandler  *handler.TouristHandler
	geofenceHandler *handler.GeofenceHandler
	alertHandler    *handler.AlertHandler
	subscriber      *subscriber.LocationSubscriber
}

func Build(deps Deps) (*Module, error) {
	locationRepo := postgres.NewLocationRepo(deps.DB)
	geofenceRepo := postgres.NewGeofenceRepo(deps.DB)
	alertRepo := postgres.NewAlertRepo(deps.DB)
	locationCache := redis.NewLocationCache(deps.Redis, deps.LocationTTL)

	alertPub, err := rabbitmq.NewAlertPublisher(deps.AMQP)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	clock := clockwork.NewRealClock()
	locationSvc := service.NewLocationService(locationRepo, locationCache, clock, deps.Logger)
	geofenceSvc := service.NewGeofenceService(geofenceRepo, alertRepo, alertPub, clock, deps.Metrics, deps.Logger)
	alertSvc := service.NewAlertService(alertRepo, deps.Logger)

	sub := subscriber.NewLocationSubscriber(deps.MQTT, locationSvc, geofenceSvc, deps.Metrics, deps.Logger)

	return &Module{
		LocationSvc:     locationSvc,
		GeofenceSvc:     geofenceSvc,
		AlertSvc:        alertSvc,
		touristHandler:  handler.NewTouristHandler(locationSvc, geofenceSvc),
		geofenceHandler: handler.NewGeofenceHandler(geofenceSvc),
		alertHandler:    handler.NewAlertHandler(alertSvc),
		subscriber:      sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.touristHandler.Register(r)
	m.geofenceHandler.Register(r)
	m.alertHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// AlertQueue is the durable queue geofence alerts are fanned out to.
const AlertQueue = rabbitmq.QueueName

type AlertMessage = rabbitmq.AlertMessage

// DeclareAlertTopology declares the alert exchange and queue on ch.
func DeclareAlertTopology(ch *amqp.Channel) error {
	return rabbitmq.DeclareTopology(ch)
}
