package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the application. Statements are idempotent
// so Migrate can run on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT '',
	is_guest BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
	category TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

CREATE TABLE IF NOT EXISTS product_images (
	id UUID PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	url TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 1,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id, position);

CREATE TABLE IF NOT EXISTS carts (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id UUID PRIMARY KEY,
	cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
	product_id TEXT NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL CHECK (quantity >= 1),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS coupons (
	id UUID PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	discount_type TEXT NOT NULL CHECK (discount_type IN ('percentage', 'fixed')),
	discount_value NUMERIC(10,2) NOT NULL CHECK (discount_value > 0),
	total_count INTEGER NOT NULL DEFAULT 1 CHECK (total_count >= 0),
	used_count INTEGER NOT NULL DEFAULT 0 CHECK (used_count >= 0),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS coupon_usages (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	coupon_id UUID NOT NULL REFERENCES coupons(id) ON DELETE CASCADE,
	used_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, coupon_id)
);
CREATE INDEX IF NOT EXISTS idx_coupon_usages_user_used_at ON coupon_usages(user_id, used_at DESC);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	coupon_code TEXT,
	total NUMERIC(10,2) NOT NULL DEFAULT 0,
	discount NUMERIC(10,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
	id UUID PRIMARY KEY,
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id TEXT NOT NULL,
	quantity INTEGER NOT NULL CHECK (quantity >= 1),
	unit_price NUMERIC(10,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS blog_posts (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	content TEXT NOT NULL,
	author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	view_count INTEGER NOT NULL DEFAULT 0 CHECK (view_count >= 0),
	like_count INTEGER NOT NULL DEFAULT 0 CHECK (like_count >= 0),
	comment_count INTEGER NOT NULL DEFAULT 0 CHECK (comment_count >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_blog_posts_category ON blog_posts(category);
CREATE INDEX IF NOT EXISTS idx_blog_posts_created_at ON blog_posts(created_at DESC);

CREATE TABLE IF NOT EXISTS blog_comments (
	id UUID PRIMARY KEY,
	post_id UUID NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	comment TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_blog_comments_post ON blog_comments(post_id, created_at DESC);

CREATE TABLE IF NOT EXISTS reviews (
	id UUID PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (product_id, user_id)
);
`

// Migrate applies the schema to the database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
