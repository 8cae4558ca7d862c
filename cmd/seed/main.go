package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/RoyceAzure/lab/shopcenter/internal/appcontext"
	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/shopspring/decimal"
)

type seedData struct {
	Admin      *seedAdmin    `json:"admin"`
	Categories []string      `json:"categories"`
	Products   []seedProduct `json:"products"`
}

type seedAdmin struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	SecurityAnswer string `json:"security_answer"`
}

type seedProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Shipping    bool            `json:"shipping"`
}

// 載入fixture資料: admin用戶, 分類與商品
// 重複執行為冪等, 已存在的資料跳過
func main() {
	file := flag.String("file", "seed.json", "seed fixture file")
	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read seed file: %v", err)
	}

	var data seedData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if data.Admin != nil {
		if err := seedAdminUser(ctx, app, data.Admin); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	categoryIDs, err := seedCategories(ctx, app, data.Categories)
	if err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}

	if err := seedProducts(ctx, app, data.Products, categoryIDs); err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}

	log.Printf("seed completed")
}

func seedAdminUser(ctx context.Context, app *appcontext.ApplicationContext, admin *seedAdmin) error {
	existing, err := app.UserService.GetUserByEmail(ctx, admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("admin user %s already exists, skipped", admin.Email)
		return nil
	}

	hashed, err := util.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	_, err = app.UserService.CreateUser(ctx, &model.User{
		Name:           admin.Name,
		Email:          admin.Email,
		PasswordHash:   hashed,
		Phone:          admin.Phone,
		Address:        admin.Address,
		SecurityAnswer: admin.SecurityAnswer,
		IsAdmin:        true,
	})
	if err != nil {
		return err
	}
	log.Printf("admin user %s created", admin.Email)
	return nil
}

func seedCategories(ctx context.Context, app *appcontext.ApplicationContext, names []string) (map[string]uint, error) {
	categoryIDs := make(map[string]uint, len(names))
	for _, name := range names {
		category, created, err := app.CategoryService.CreateCategory(ctx, name)
		if err != nil {
			return nil, err
		}
		categoryIDs[name] = category.CategoryID
		if created {
			log.Printf("category %s created", name)
		} else {
			log.Printf("category %s already exists, skipped", name)
		}
	}
	return categoryIDs, nil
}

func seedProducts(ctx context.Context, app *appcontext.ApplicationContext, products []seedProduct, categoryIDs map[string]uint) error {
	for _, p := range products {
		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			log.Printf("product %s references unknown category %s, skipped", p.Name, p.Category)
			continue
		}

		_, err := app.ProductService.CreateProduct(ctx, service.ProductParams{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			CategoryID:  categoryID,
			Quantity:    p.Quantity,
			Shipping:    p.Shipping,
		})
		if err != nil {
			// slug衝突代表已存在, 冪等跳過
			log.Printf("product %s skipped: %v", p.Name, err)
			continue
		}
		log.Printf("product %s created", p.Name)
	}
	return nil
}
