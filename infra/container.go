package infra

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"pixrelay/infra/metrics"
	"pixrelay/internal/eventlog"
	"pixrelay/internal/forwarder"
	"pixrelay/internal/webhook"
	"pixrelay/pkg"
)

type ContainerDI struct {
	Config         Config
	Registerer     prometheus.Registerer
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Redis          *redis.Client
	EventSink      eventlog.Sink
	EventLogger    *eventlog.Logger
	Forwarder      *forwarder.Client
	ServiceWebhook *webhook.Service
	HandlerWebhook *webhook.Handler
}

func NewContainerDI(config Config) *ContainerDI {
	container, err := BuildContainerDI(config, prometheus.DefaultRegisterer)
	if err != nil {
		panic("failed to build container: " + err.Error())
	}
	return container
}

func BuildContainerDI(config Config, registerer prometheus.Registerer) (*ContainerDI, error) {
	container := &ContainerDI{Config: config, Registerer: registerer}
	steps := []func() error{
		container.buildPkg,
		container.buildEventLog,
		container.buildService,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			container.Close()
			return nil, err
		}
	}
	container.buildHandler()
	return container, nil
}

func (c *ContainerDI) buildPkg() error {
	logger, err := NewLogger(c.Config.Environment)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	c.Logger = logger.With(zap.String("service", c.Config.ServerName))
	c.Metrics = metrics.NewMetrics(c.Registerer)

	if c.Config.LogRedisURL != "" {
		client, err := pkg.NewRedisClient(context.Background(), c.Config.LogRedisURL)
		if err != nil {
			return err
		}
		c.Redis = client
	}
	return nil
}

func (c *ContainerDI) buildEventLog() error {
	fileSink, err := eventlog.NewFileSink(c.Config.LogFile)
	if err != nil {
		return err
	}
	c.EventSink = fileSink
	if c.Redis != nil {
		c.EventSink = eventlog.MultiSink{fileSink, eventlog.NewRedisSink(c.Redis, c.Config.LogRedisKey)}
	}
	c.EventLogger = eventlog.NewLogger(c.EventSink, c.Logger, eventlog.WithFailureCounter(c.Metrics.LogFailures))
	return nil
}

func (c *ContainerDI) buildService() error {
	client, err := forwarder.NewClient(c.Config.ForwarderConfig())
	if err != nil {
		return err
	}
	c.Forwarder = client

	if c.Config.ForwardTLSInsecure {
		c.Logger.Warn("TLS certificate verification is DISABLED for the forward destination",
			zap.String("forward_url", c.Config.ForwardURL))
		c.EventLogger.Log(context.Background(), eventlog.KindTLSInsecure, map[string]any{
			"forward_url": c.Config.ForwardURL,
			"message":     "certificate verification disabled by FORWARD_TLS_INSECURE",
		})
	}

	profile, err := webhook.LookupProfile(c.Config.WebhookProfile)
	if err != nil {
		return err
	}

	c.Logger.Info("forwarder configured",
		zap.String("forward_url", c.Config.ForwardURL),
		zap.String("forward_token", MaskSecret(c.Config.ForwardToken)),
		zap.String("profile", profile.Name),
		zap.Duration("timeout", c.Config.ForwardTimeout),
		zap.Duration("connect_timeout", c.Config.ForwardConnectTimeout),
		zap.Bool("follow_redirects", c.Config.ForwardFollowRedirects),
		zap.Int("max_redirects", c.Config.ForwardMaxRedirects),
	)

	c.ServiceWebhook = webhook.NewWebhookService(profile, c.Forwarder, c.EventLogger, c.Metrics)
	return nil
}

func (c *ContainerDI) buildHandler() {
	c.HandlerWebhook = webhook.NewWebhookHandler(c.ServiceWebhook, c.Metrics)
}

func (c *ContainerDI) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("close redis", zap.Error(err))
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
