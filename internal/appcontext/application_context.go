package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/SecretJA/Badminton-eweb/internal/config"
	"github.com/SecretJA/Badminton-eweb/internal/infra/producer"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/redis_repo"
	"github.com/SecretJA/Badminton-eweb/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf               *config.Config
	Logger           zerolog.Logger
	DbConn           *gorm.DB
	DbDao            *db.DbDao
	RedisClient      *redis.Client
	ProductRepo      db.IProductRepo
	OrderRepo        db.IOrderRepo
	CartRepo         redis_repo.ICartRepo
	OrderProducer    *producer.OrderProducer
	InventoryService service.IInventoryService
	CartService      service.ICartService
	OrderService     service.IOrderService
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
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	app.setUpRepos()
	app.setUpProducer()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	app.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "badminton-eweb").
		Logger()
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewDbDao(app.DbConn)
	err := app.DbDao.InitMigrate()
	if err != nil {
		return err
	}
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis client")
	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}
	app.RedisClient = client
	log.Printf("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpRepos() {
	log.Printf("Start setup repositories")
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.OrderRepo = db.NewOrderRepo(app.DbDao)
	app.CartRepo = redis_repo.NewCartRepo(app.RedisClient)
	log.Printf("Finish setup repositories")
}

func (app *ApplicationContext) setUpProducer() {
	log.Printf("Start setup order producer")
	app.OrderProducer = producer.NewOrderProducer(strings.Split(app.Cf.KafkaBrokers, ","), app.Cf.KafkaTopic)
	log.Printf("Finish setup order producer")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")
	app.InventoryService = service.NewInventoryService(app.ProductRepo)
	app.CartService = service.NewCartService(app.CartRepo, app.ProductRepo)
	app.OrderService = service.NewOrderService(app.OrderRepo, app.CartRepo, app.InventoryService, app.OrderProducer, app.Logger)
	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.OrderProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("kafka producer shutdown error: %v", err)
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
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
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
