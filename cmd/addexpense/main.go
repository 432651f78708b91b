// addexpense records a transaction for an existing user from the command
// line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"expensemanager/internal/amqp"
	"expensemanager/internal/cli"
	"expensemanager/internal/core"
	"expensemanager/internal/log"
	"expensemanager/internal/services"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("addexpense", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Owner's email address")
	categoryName := fs.String("category", "", "Category name")
	description := fs.String("description", "", "Transaction description")
	amountStr := fs.String("amount", "", "Amount as a decimal, e.g. 12.34")
	currency := fs.String("currency", "", "Currency code (defaults to configured currency)")
	dateStr := fs.String("date", "", "Transaction date YYYY-MM-DD (defaults to today)")
	typeStr := fs.String("type", "", "Transaction type: expense or income (defaults to expense)")
	paymentStr := fs.String("payment", "", "Payment method: cash, debit_card, credit_card, pix, bank_transfer, other")
	notes := fs.String("notes", "", "Free-form notes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" || *categoryName == "" || *description == "" || *amountStr == "" {
		fmt.Fprintln(stdout, "Usage: addexpense -email <email> -category <name> -description <text> -amount <decimal> [options]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email, category, description, amount")
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	cur := *currency
	if cur == "" {
		cur = cfg.DefaultCurrency
	}
	amount, err := core.ParseMoney(*amountStr, cur)
	if err != nil {
		return err
	}

	date := time.Now().UTC()
	if *dateStr != "" {
		date, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", *dateStr, err)
		}
	}

	expenseType, err := core.ParseExpenseType(*typeStr)
	if err != nil {
		return err
	}
	paymentMethod, err := core.ParsePaymentMethod(*paymentStr)
	if err != nil {
		return err
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx := context.Background()

	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, recording without events", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	// Lookups go through the same normalization the entities store.
	addr, err := core.NewEmail(*email)
	if err != nil {
		return err
	}
	user, err := repo.GetUserByEmail(ctx, addr.String())
	if err != nil {
		return fmt.Errorf("find user %s: %w", addr, err)
	}
	category, err := repo.GetCategoryByName(ctx, user.ID(), strings.TrimSpace(*categoryName))
	if err != nil {
		return fmt.Errorf("find category %q: %w", *categoryName, err)
	}

	expenses := services.NewExpenseService(repo, repo, repo, publisher, logger)
	expense, err := expenses.Record(ctx, services.RecordExpenseInput{
		UserID:        user.ID(),
		CategoryID:    category.ID(),
		Description:   *description,
		Amount:        amount,
		Date:          date,
		Type:          expenseType,
		PaymentMethod: paymentMethod,
		Notes:         *notes,
	})
	if err != nil {
		return fmt.Errorf("record expense: %w", err)
	}

	fmt.Fprintf(stdout, "Recorded %s (%s) with id %s\n", expense.Amount(), expense.Description(), expense.ID())
	return nil
}
