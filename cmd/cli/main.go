package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/venturelink/backend/internal/audit"
	"github.com/venturelink/backend/internal/config"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/services"
	"github.com/venturelink/backend/internal/storage"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  balances
  history <role>
  deposit <role> <amount>
  withdraw <role> <amount>
  transfer <sender> <receiver> <amount>
  fund <amount>
  adjust <role> <amount>
  reconcile`

var (
	okColor   = color.New(color.FgGreen).SprintFunc()
	errColor  = color.New(color.FgRed).SprintFunc()
	headColor = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}

	// Keep [TAG] logs out of the command output.
	log.SetOutput(io.Discard)

	cfg := config.Load(".env")
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.StorageDriver)
	if err != nil {
		fail("Failed to open storage:", err)
	}
	defer store.Close()

	seed := ledger.BalanceTable{
		ledger.Investor:     cfg.SeedInvestor,
		ledger.Entrepreneur: cfg.SeedEntrepreneur,
	}
	svc := services.NewLedgerService(store, seed, audit.NewLoggerTo(log.New(os.Stderr, "", log.LstdFlags)))
	if err := svc.Load(ctx); err != nil {
		fail("Failed to load ledger:", err)
	}

	if ephemeral(cfg.StorageDriver, os.Args[1]) {
		fmt.Fprintln(os.Stderr, errColor("Warning:"), "memory storage is not kept after this command exits; set STORAGE_DRIVER=redis or postgres")
	}

	if err := run(ctx, svc, os.Args[1:]); err != nil {
		fail("Error:", err)
	}
}

func run(ctx context.Context, svc *services.LedgerService, args []string) error {
	switch args[0] {
	case "balances":
		printBalances(svc.Balances())
	case "history":
		if len(args) < 2 {
			return fmt.Errorf("usage: history <role>")
		}
		role, err := ledger.ParseRole(args[1])
		if err != nil {
			return err
		}
		printHistory(svc.History(role))
	case "deposit", "withdraw":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s <role> <amount>", args[0])
		}
		role, amount, err := roleAndAmount(args[1], args[2])
		if err != nil {
			return err
		}
		submit := svc.Deposit
		if args[0] == "withdraw" {
			submit = svc.Withdraw
		}
		tx, err := submit(ctx, role, amount)
		if err != nil {
			return err
		}
		printRecorded(tx, svc.Balances())
	case "transfer":
		if len(args) < 4 {
			return fmt.Errorf("usage: transfer <sender> <receiver> <amount>")
		}
		sender, amount, err := roleAndAmount(args[1], args[3])
		if err != nil {
			return err
		}
		receiver, err := ledger.ParseRole(args[2])
		if err != nil {
			return err
		}
		tx, err := svc.Transfer(ctx, sender, receiver, amount)
		if err != nil {
			return err
		}
		printRecorded(tx, svc.Balances())
	case "fund":
		if len(args) < 2 {
			return fmt.Errorf("usage: fund <amount>")
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		tx, err := svc.Fund(ctx, ledger.Investor, amount)
		if err != nil {
			return err
		}
		printRecorded(tx, svc.Balances())
	case "adjust":
		if len(args) < 3 {
			return fmt.Errorf("usage: adjust <role> <amount>")
		}
		role, amount, err := roleAndAmount(args[1], args[2])
		if err != nil {
			return err
		}
		before := svc.Snapshot().Balances[role]
		svc.MergeBalances(map[ledger.Role]decimal.Decimal{role: amount})
		fmt.Printf("%s %s balance %s -> %s (not recorded as a transaction)\n",
			okColor("Adjusted"), role, before.StringFixed(2), amount.StringFixed(2))
		printBalances(svc.Balances())
		printDrift(svc.Reconcile())
	case "reconcile":
		printDrift(svc.Reconcile())
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

// ephemeral reports whether command changes the ledger on a store that
// forgets everything when the process exits.
func ephemeral(driver, command string) bool {
	if driver != "" && driver != storage.DriverMemory {
		return false
	}
	switch command {
	case "deposit", "withdraw", "transfer", "fund", "adjust":
		return true
	}
	return false
}

func roleAndAmount(roleArg, amountArg string) (ledger.Role, decimal.Decimal, error) {
	role, err := ledger.ParseRole(roleArg)
	if err != nil {
		return "", decimal.Zero, err
	}
	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	return role, amount, nil
}

func printBalances(b ledger.BalanceTable) {
	fmt.Println(headColor("Balances"))
	for _, role := range ledger.Roles {
		v := b[role]
		amount := okColor(v.StringFixed(2))
		if v.IsNegative() {
			amount = errColor(v.StringFixed(2))
		}
		fmt.Printf("  %-13s %s\n", role, amount)
	}
}

func printHistory(txs []ledger.Transaction) {
	fmt.Println(headColor(fmt.Sprintf("%-12s %-9s %12s  %-13s %-13s %s", "ID", "TYPE", "AMOUNT", "FROM", "TO", "DATE")))
	for _, tx := range txs {
		fmt.Printf("%-12s %-9s %12s  %-13s %-13s %s\n",
			tx.ID, tx.Type, tx.Amount.StringFixed(2), tx.Sender, tx.Receiver, tx.Date.Format("2006-01-02 15:04"))
	}
	if len(txs) == 0 {
		fmt.Println("No transactions")
	}
}

func printDrift(drift ledger.Delta) {
	if len(drift) == 0 {
		fmt.Println(okColor("Balances match the transaction history"))
		return
	}
	for _, role := range ledger.Roles {
		if d, ok := drift[role]; ok {
			fmt.Printf("%-13s drift %s\n", role, errColor(d.StringFixed(2)))
		}
	}
}

func printRecorded(tx ledger.Transaction, b ledger.BalanceTable) {
	fmt.Printf("%s %s %s: %s -> %s (%s)\n", okColor("Recorded"), tx.Type, tx.Amount.StringFixed(2), tx.Sender, tx.Receiver, tx.ID)
	printBalances(b)
}

func fail(msg string, err error) {
	fmt.Fprintln(os.Stderr, errColor(msg), err)
	os.Exit(1)
}
