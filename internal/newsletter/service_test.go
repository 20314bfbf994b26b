package newsletter

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/novamart/storefront-backend/pkg/db/models"
	"github.com/novamart/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:newsletter_%s?mode=memory&cache=shared", uuid.NewString())
	silent := gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent})
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: silent})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.NewsletterSubscription{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewService(NewRepository(conn))
}

func TestSubscribeStoresLowercasedEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Subscribe(ctx, SubscribeRequest{Email: "  Ada@Example.COM "})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if resp.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.Email)
	}
}

func TestSubscribeDuplicateIsConflict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, SubscribeRequest{Email: "ada@example.com"}); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}

	_, err := svc.Subscribe(ctx, SubscribeRequest{Email: "ADA@example.com"})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"", "   ", "not-an-email", "@example.com"} {
		_, err := svc.Subscribe(ctx, SubscribeRequest{Email: email})
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeValidation {
			t.Fatalf("email %q: expected validation error, got %v", email, err)
		}
	}
}
