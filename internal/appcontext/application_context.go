package appcontext

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/cache"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/cache/redis"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	DbConn          *gorm.DB
	DbDao           *db.DbDao
	Cf              *config.Config
	CartCache       cache.Cache
	TokenMaker      token.Maker
	PaymentGateway  payment.Gateway
	OrderProducer   *producer.OrderProducer
	UserService     service.IUserService
	AuthService     service.IAuthService
	CategoryService service.ICategoryService
	ProductService  service.IProductService
	CartService     service.ICartService
	OrderService    service.IOrderService
	CheckoutService service.ICheckoutService

	userRepo     *db.UserRepo
	categoryRepo *db.CategoryRepo
	productRepo  *db.ProductRepo
	orderRepo    *db.OrderRepo
	cartRepo     *redis_repo.CartRepo
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
	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}

	err = app.setUpCartCache()
	if err != nil {
		return err
	}

	err = app.setUpRepos()
	if err != nil {
		return err
	}

	err = app.setTokenMaker()
	if err != nil {
		return err
	}

	err = app.setUpPaymentGateway()
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
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpCartCache() error {
	log.Printf("Start setup cart cache")
	client, err := redis.GetRedisClient(app.Cf.RedisAddr, redis.WithPassword(app.Cf.RedisPassword))
	if err != nil {
		return err
	}
	app.CartCache = redis.NewRedisCache(client, app.Cf.ModulerName)

	// 啟動時確認redis可用, 購物車完全依賴cache
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := app.CartCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping cart cache: %w", err)
	}
	log.Printf("Finish setup cart cache")
	return nil
}

func (app *ApplicationContext) setUpRepos() error {
	log.Printf("Start setup repositories")
	app.userRepo = db.NewUserRepo(app.DbDao)
	app.categoryRepo = db.NewCategoryRepo(app.DbDao)
	app.productRepo = db.NewProductRepo(app.DbDao)
	app.orderRepo = db.NewOrderRepo(app.DbDao)
	app.cartRepo = redis_repo.NewCartRepo(app.CartCache)
	log.Printf("Finish setup repositories")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpPaymentGateway() error {
	log.Printf("Start setup payment gateway")
	app.PaymentGateway = payment.NewBraintreeGateway(
		app.Cf.BraintreeEnvironment,
		app.Cf.BraintreeMerchantID,
		app.Cf.BraintreePublicKey,
		app.Cf.BraintreePrivateKey,
	)
	log.Printf("Finish setup payment gateway")
	return nil
}

// setUpOrderProducer KAFKA_BROKERS未設定時不啟用事件發送
func (app *ApplicationContext) setUpOrderProducer() error {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("kafka brokers not configured, order events disabled")
		return nil
	}
	log.Printf("Start setup order producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	p := producer.New(producer.DefaultConfig(brokers, app.Cf.KafkaOrderTopic))
	app.OrderProducer = producer.NewOrderProducer(p)
	log.Printf("Finish setup order producer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	app.UserService = service.NewUserService(app.userRepo)
	app.AuthService = service.NewAuthService(app.UserService, app.TokenMaker)
	app.CategoryService = service.NewCategoryService(app.categoryRepo)
	app.ProductService = service.NewProductService(app.productRepo, app.categoryRepo)
	app.CartService = service.NewCartService(app.cartRepo, app.productRepo)
	app.OrderService = service.NewOrderService(app.orderRepo, app.OrderProducer)
	app.CheckoutService = service.NewCheckoutService(app.orderRepo, app.productRepo, app.CartService, app.PaymentGateway, app.OrderProducer)
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing order producer...")
			if err := app.OrderProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("order producer shutdown error: %v", err)
			}
		}

		// 關閉 DB
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
