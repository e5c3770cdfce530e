package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/RoyceAzure/lab/plantshop/internal/config"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/producer"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/plantshop/internal/limiter"
	"github.com/RoyceAzure/lab/plantshop/internal/service"
	"github.com/RoyceAzure/lab/plantshop/internal/token"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ApplicationContext struct {
	Cf             *config.Config
	Logger         *zerolog.Logger
	DbConn         *pgxpool.Pool
	DbDao          db.IStore
	TokenMaker     token.Maker
	RedisClient    *redis.Client
	RateLimiter    limiter.ILimiter
	OrderProducer  producer.IOrderEventProducer
	CatalogService service.ICatalogService
	CartService    service.ICartService
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}
	err = app.dbInit()
	if err != nil {
		return err
	}
	err = app.setTokenMaker()
	if err != nil {
		return err
	}
	err = app.setUpRateLimiter()
	if err != nil {
		return err
	}
	err = app.setUpOrderProducer()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "plantshop").Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := pgxpool.New(context.Background(),
		fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName))
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewStore(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewPasetoMaker(app.Cf.TokenSymmetricKey)
	if err != nil {
		return fmt.Errorf("cannot create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

// setUpRateLimiter wires the redis token bucket; without REDIS_ADDR the
// limiter stays nil and throttling is off.
func (app *ApplicationContext) setUpRateLimiter() error {
	if app.Cf.RedisAddr == "" {
		log.Printf("Redis not configured, rate limiting disabled")
		return nil
	}

	log.Printf("Start setup rate limiter")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	app.RateLimiter = limiter.NewRedisTokenBucket(app.RedisClient, app.Cf.RateLimitCapacity, app.Cf.RateLimitRate)
	log.Printf("Finish setup rate limiter")
	return nil
}

// setUpOrderProducer wires the kafka producer; without KAFKA_BROKERS order
// events are dropped by a nop producer.
func (app *ApplicationContext) setUpOrderProducer() error {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("Kafka not configured, order events disabled")
		app.OrderProducer = producer.NopOrderEventProducer{}
		return nil
	}

	log.Printf("Start setup order event producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.OrderProducer = producer.NewKafkaOrderEventProducer(brokers, app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	app.CatalogService = service.NewCatalogService(app.DbDao)
	app.CartService = service.NewCartService(app.DbDao)
	app.OrderService = service.NewOrderService(app.DbDao, app.OrderProducer)
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing order event producer...")
			if err := app.OrderProducer.Close(); err != nil {
				log.Printf("order event producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis client shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			app.DbConn.Close()
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

func runDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}

	return migration.Up()
}

// dbInit applies migrations and, when DB_SEED is on, loads the catalog seed.
func (app *ApplicationContext) dbInit() error {
	log.Printf("Start setup db init")

	err := runDBMigration(
		fmt.Sprintf("file://%s", app.Cf.MigrationPath),
		fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName),
	)
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	if app.Cf.DbSeed {
		if err := app.seedCatalog(); err != nil {
			return err
		}
	}

	log.Printf("Finish setup db init")
	return nil
}

func (app *ApplicationContext) seedCatalog() error {
	log.Printf("Seeding catalog from %s", app.Cf.SeedFile)

	seedCf, err := config.LoadSeedConfig(app.Cf.SeedFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.DbDao.ExecTx(ctx, func(q *db.Queries) error {
		categoryIDs := map[string]int64{}
		for _, category := range seedCf.Categories {
			id, err := q.CreateCategoryIfNotExists(ctx, db.CreateCategoryParams{
				Name:        category.Name,
				Slug:        category.Slug,
				Description: category.Description,
				ImageURL:    category.ImageURL,
			})
			if err != nil {
				return err
			}
			categoryIDs[category.Slug] = id
		}

		for _, product := range seedCf.Products {
			price, err := decimal.NewFromString(product.Price)
			if err != nil {
				return fmt.Errorf("invalid seed price for %s: %w", product.Slug, err)
			}

			var categoryID *int64
			if id, ok := categoryIDs[product.Category]; ok {
				categoryID = &id
			}

			err = q.CreateProductIfNotExists(ctx, db.CreateProductParams{
				CategoryID:    categoryID,
				Name:          product.Name,
				Slug:          product.Slug,
				Description:   product.Description,
				Price:         price,
				ImageURL:      product.ImageURL,
				Stock:         product.Stock,
				IsFeatured:    product.IsFeatured,
				BotanicalName: product.BotanicalName,
				CareLevel:     product.CareLevel,
				Sunlight:      product.Sunlight,
				WaterNeeds:    product.WaterNeeds,
				Height:        product.Height,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
