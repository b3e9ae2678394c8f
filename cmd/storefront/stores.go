package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/config"
	"github.com/MikeMC777/pickles-ecom/internal/health"
	"github.com/MikeMC777/pickles-ecom/internal/notify"
	"github.com/MikeMC777/pickles-ecom/internal/order"
	"github.com/MikeMC777/pickles-ecom/internal/session"
	"github.com/MikeMC777/pickles-ecom/internal/storage"
	"github.com/MikeMC777/pickles-ecom/internal/user"
)

type stores struct {
	users  user.Repository
	orders order.Repository
	close  func()
}

// openStores builds the credential and order stores for cfg.StoreDriver and
// registers a reachability check for each external one.
func openStores(ctx context.Context, cfg *config.Config, awsCfg func() (aws.Config, error), mon *health.Monitor, logger *zap.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.PostgresMigrate {
			if err := storage.Migrate(cfg.PostgresDSN); err != nil {
				return nil, err
			}
			logger.Info("database migrated")
		}
		pool, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		mon.Add("postgres", pool.Ping)
		return &stores{
			users:  user.NewPGRepo(pool),
			orders: order.NewPGRepo(pool),
			close:  pool.Close,
		}, nil

	case config.DriverDynamoDB:
		ac, err := awsCfg()
		if err != nil {
			return nil, err
		}
		client := storage.NewDynamoDB(ac, cfg.DynamoDBEndpoint)
		for _, table := range []string{cfg.UsersTable, cfg.OrdersTable} {
			table := table
			mon.Add("dynamodb:"+table, func(ctx context.Context) error {
				_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
				return err
			})
		}
		return &stores{
			users:  user.NewDynamoRepo(client, cfg.UsersTable),
			orders: order.NewDynamoRepo(client, cfg.OrdersTable),
			close:  func() {},
		}, nil

	default:
		logger.Warn("using in-memory stores; data is lost on restart")
		return &stores{
			users:  user.NewMemoryRepo(),
			orders: order.NewMemoryRepo(),
			close:  func() {},
		}, nil
	}
}

func openSessions(ctx context.Context, cfg *config.Config, mon *health.Monitor) (session.Store, func(), error) {
	if cfg.SessionDriver != config.DriverRedis {
		return session.NewMemoryStore(), func() {}, nil
	}
	client, err := storage.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	mon.Add("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })
	return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

func newNotifier(cfg *config.Config, awsCfg func() (aws.Config, error), logger *zap.Logger) (notify.Notifier, error) {
	switch cfg.NotifyDriver {
	case config.NotifySMTP:
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.Sender(),
		})
	case config.NotifySNS:
		ac, err := awsCfg()
		if err != nil {
			return nil, err
		}
		return notify.NewSNSNotifier(storage.NewSNS(ac), cfg.SNSTopicARN), nil
	case config.NotifyLog:
		return notify.NewLogNotifier(logger), nil
	default:
		return nil, fmt.Errorf("unknown notify driver %q", cfg.NotifyDriver)
	}
}
