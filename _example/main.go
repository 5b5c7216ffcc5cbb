// Command example validates an untrusted account object, prints every
// violation, then serves the same schema over HTTP.
//
// Run:
//
//	go run ./_example
//
// Then POST objects to http://localhost:8080/schemas/account/validate or open
// http://localhost:8080/openapi.json.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/internal/logger"
	"github.com/Gobd/objectvalidation/internal/server"
)

// account describes an account received from an API we do not trust.
var account = ov.Schema{
	ov.Prop("id", ov.Forbidden),
	ov.Prop("name", ov.IsString, ov.Nullable),
	ov.Prop("last_name", ov.IsString, ov.Nullable,
		ov.Depends(ov.Equals("is_company", false))),
	ov.Prop("phone", ov.IsString, ov.Nullable,
		ov.Depends(ov.NotEquals("cellphone", nil)),
		ov.OneOf("cellphone")),
	ov.Prop("cellphone", ov.IsString, ov.Nullable, ov.OneOf("phone")),
	ov.Prop("is_company", ov.IsBoolean, ov.AlwaysPresent,
		ov.Depends(ov.Equals("name", "google"), ov.Exists("comments"))),
	ov.Prop("account_type", ov.IsString, ov.Nullable, ov.In("reviewer", "user")),
	ov.Prop("comments", ov.IsString, ov.Nullable, ov.Depends(ov.Exists("phone"))),
}

func main() {
	obj := ov.Object{
		"id":           "63b6d31a-52fa-4269-a1dd-7cb6dc39e67b",
		"name":         nil,
		"last_name":    "last name",
		"phone":        "+595 888 7777",
		"cellphone":    nil,
		"is_company":   true,
		"account_type": "reviewer",
		"comments":     "a",
	}

	// Fails with 4 violations.
	c := &ov.Collector{}
	if _, err := ov.Validate(obj, account, ov.Options{Reporter: c}); err != nil {
		for _, msg := range c.Violations.Messages() {
			fmt.Println(msg)
		}
	}

	log := logger.New()
	h, err := server.New(map[string]ov.Schema{"account": account}, ov.Options{}, log)
	if err != nil {
		log.Error("cannot build server", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := server.Run(ctx, ":8080", h, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
