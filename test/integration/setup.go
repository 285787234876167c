package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopkart/internal/database"
	"shopkart/internal/model"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	// Numeric columns scan into shopspring decimals, same as production
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		price    string
		category string
		active   bool
	}{
		{"P001", "Test Product 1", "10.00", "Category A", true},
		{"P002", "Test Product 2", "20.00", "Category B", true},
		{"P003", "Test Product 3", "30.00", "Category A", true},
		{"P004", "Test Product 4", "40.00", "Category C", true},
		{"P005", "Test Product 5", "50.00", "Category B", false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, category, is_active) VALUES ($1, $2, $3, $4, $5)",
			p.id, p.name, p.price, p.category, p.active,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}

	images := []struct {
		productID string
		url       string
		position  int
	}{
		{"P001", "https://img.example.com/p001-front.jpg", 1},
		{"P001", "https://img.example.com/p001-back.jpg", 2},
		{"P002", "https://img.example.com/p002.jpg", 1},
	}

	for _, img := range images {
		_, err := pool.Exec(ctx,
			"INSERT INTO product_images (id, product_id, url, position, is_active) VALUES (gen_random_uuid(), $1, $2, $3, TRUE)",
			img.productID, img.url, img.position,
		)
		if err != nil {
			t.Fatalf("failed to seed image for %s: %v", img.productID, err)
		}
	}
}

// SeedUser inserts a registered user and returns the user.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) *model.User {
	t.Helper()

	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
	}
	err = pool.QueryRow(ctx,
		"INSERT INTO users (id, email, name, password_hash) VALUES (gen_random_uuid(), $1, $2, $3) RETURNING id, created_at",
		user.Email, user.Name, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return user
}

// SeedCoupon inserts a coupon definition and returns its ID.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, code, discountType, discountValue string, totalCount int) *model.Coupon {
	t.Helper()

	ctx := context.Background()
	coupon := &model.Coupon{
		Code:         code,
		DiscountType: discountType,
		TotalCount:   totalCount,
		IsActive:     true,
	}
	err := pool.QueryRow(ctx,
		`INSERT INTO coupons (id, code, description, discount_type, discount_value, total_count)
		 VALUES (gen_random_uuid(), $1, '', $2, $3, $4)
		 RETURNING id, discount_value, created_at, updated_at`,
		code, discountType, discountValue, totalCount,
	).Scan(&coupon.ID, &coupon.DiscountValue, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}

	return coupon
}

// SeedBlogPost inserts an active blog post authored by the given user.
func SeedBlogPost(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, title, slug string) *model.BlogPost {
	t.Helper()

	ctx := context.Background()
	post := &model.BlogPost{
		Title:    title,
		Slug:     slug,
		Content:  "seeded content",
		AuthorID: authorID,
		IsActive: true,
	}
	err := pool.QueryRow(ctx,
		`INSERT INTO blog_posts (id, title, slug, content, author_id)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		title, slug, post.Content, authorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to seed blog post %s: %v", slug, err)
	}

	return post
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"order_items", "orders",
		"coupon_usages", "coupons",
		"blog_comments", "blog_posts",
		"reviews",
		"cart_items", "carts",
		"product_images", "products",
		"users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
