package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/auth"
	"github.com/openshelf/go-inventory-console/dashboard"
	"github.com/openshelf/go-inventory-console/internal/config"
	"github.com/openshelf/go-inventory-console/inventory"
	"github.com/openshelf/go-inventory-console/replenishment"
	"github.com/openshelf/go-inventory-console/session"
)

type console struct {
	cfg    config.Config
	client *api.Client
	store  *session.FileStore
	gate   *auth.Gate
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	cfg := config.New()
	setupLogging(cfg)

	if len(args) == 0 {
		usage(cfg.GetAppName())
		return errors.New("missing command")
	}

	c := &console{
		cfg: cfg,
		client: api.NewClient(cfg.GetAPIBaseURL(),
			api.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()})),
		store: session.NewFileStore(cfg.GetDataFolder()),
	}
	gate, err := auth.NewGate(c.client, c.store, auth.ConsoleNavigator{Out: os.Stdout})
	if err != nil {
		return err
	}
	c.gate = gate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "login":
		return c.runLogin(ctx, args[1:])
	case "logout":
		return c.gate.Logout()
	case "whoami":
		return c.runWhoami(ctx)
	case "dashboard":
		return c.runDashboard(ctx, args[1:])
	case "inventory":
		return c.runInventory(ctx, args[1:])
	case "replenishment":
		return c.runReplenishment(ctx, args[1:])
	default:
		usage(cfg.GetAppName())
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func setupLogging(cfg config.Config) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Str("run_id", uuid.NewString()).Logger()
}

func (c *console) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := strings.TrimSpace(*username)
	if name == "" {
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		name = strings.TrimSpace(line)
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	if err := c.gate.Login(ctx, name, password); err != nil {
		fmt.Println(api.ErrorMessage(err, "Login failed. Please try again."))
		return err
	}
	fmt.Println("Login successful.")
	return nil
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	if terminal.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := terminal.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *console) runWhoami(ctx context.Context) error {
	user, err := c.gate.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	fmt.Printf("Roles: %s\n", strings.Join(auth.SplitRoles(user.Roles), ", "))
	return nil
}

func (c *console) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep refreshing the read-only widgets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	controller, err := dashboard.NewController(c.client, c.gate, c.store, os.Stdout,
		dashboard.WithRefreshInterval(c.cfg.GetRefreshInterval()))
	if err != nil {
		return err
	}

	if !*watch {
		return controller.Run(ctx)
	}
	if err := controller.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *console) runInventory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: console inventory receipt|adjust|history|stock")
	}

	controller, err := inventory.NewController(c.client, c.gate, c.store, os.Stdout)
	if err != nil {
		return err
	}

	switch args[0] {
	case "receipt":
		fs := flag.NewFlagSet("inventory receipt", flag.ContinueOnError)
		sku := fs.String("sku", "", "product SKU")
		quantity := fs.String("qty", "", "received quantity")
		reference := fs.String("ref", "", "reference id (optional)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return controller.SubmitReceipt(ctx, inventory.ReceiptInput{
			SKU:         *sku,
			Quantity:    *quantity,
			ReferenceID: *reference,
		})
	case "adjust":
		fs := flag.NewFlagSet("inventory adjust", flag.ContinueOnError)
		sku := fs.String("sku", "", "product SKU")
		movementType := fs.String("type", "adjustment", "movement type: adjustment, damage or return")
		quantity := fs.String("qty", "", "adjusted quantity")
		reason := fs.String("reason", "", "adjustment reason")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return controller.SubmitAdjustment(ctx, inventory.AdjustmentInput{
			SKU:          *sku,
			MovementType: *movementType,
			Quantity:     *quantity,
			Reason:       *reason,
		})
	case "history":
		fs := flag.NewFlagSet("inventory history", flag.ContinueOnError)
		sku := fs.String("sku", "", "filter by product SKU (optional)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return controller.ShowHistory(ctx, *sku)
	case "stock":
		fs := flag.NewFlagSet("inventory stock", flag.ContinueOnError)
		sku := fs.String("sku", "", "product SKU")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return controller.ShowStockLevel(ctx, *sku)
	default:
		return fmt.Errorf("unknown inventory view %q", args[0])
	}
}

func (c *console) runReplenishment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: console replenishment generate|list|accept|ignore")
	}

	flash := replenishment.ConsoleFlash{Out: os.Stdout}
	confirm := replenishment.Confirmer(replenishment.ConsoleConfirmer{In: os.Stdin, Out: os.Stdout})

	switch args[0] {
	case "generate":
		fs := flag.NewFlagSet("replenishment generate", flag.ContinueOnError)
		lookback := fs.String("lookback", "", "lookback days (default 30)")
		forecast := fs.String("forecast", "", "forecast days (default 7)")
		safety := fs.String("safety", "", "safety stock factor (default 1.5)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		controller, err := replenishment.NewController(c.client, c.gate, c.store, os.Stdout, flash, confirm)
		if err != nil {
			return err
		}
		return controller.Generate(ctx, replenishment.GenerateInput{
			LookbackDays:      *lookback,
			ForecastDays:      *forecast,
			SafetyStockFactor: *safety,
		})
	case "list":
		fs := flag.NewFlagSet("replenishment list", flag.ContinueOnError)
		all := fs.Bool("all", false, "include acted-upon suggestions")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		controller, err := replenishment.NewController(c.client, c.gate, c.store, os.Stdout, flash, confirm)
		if err != nil {
			return err
		}
		return controller.ShowSuggestions(ctx, !*all)
	case "accept", "ignore":
		fs := flag.NewFlagSet("replenishment "+args[0], flag.ContinueOnError)
		id := fs.Int64("id", 0, "suggestion id")
		yes := fs.Bool("yes", false, "answer confirmation prompts with yes")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id <= 0 {
			return fmt.Errorf("a positive -id is required")
		}
		if *yes {
			confirm = autoConfirmer{}
		}
		controller, err := replenishment.NewController(c.client, c.gate, c.store, os.Stdout, flash, confirm)
		if err != nil {
			return err
		}
		if args[0] == "accept" {
			return controller.Accept(ctx, *id)
		}
		return controller.Ignore(ctx, *id)
	default:
		return fmt.Errorf("unknown replenishment action %q", args[0])
	}
}

// autoConfirmer approves prompts for non-interactive use (-yes).
type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }

func usage(appName string) {
	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()
	fmt.Fprint(os.Stderr, `usage: console <command>

  login [-u username]            sign in and store the access token
  logout                         delete the stored access token
  whoami                         show the current user and roles

  dashboard [-watch]             summary, alerts, sales and top products
  inventory receipt              record received stock
  inventory adjust               record a stock adjustment
  inventory history [-sku]       movement history
  inventory stock -sku           current stock level for one SKU
  replenishment generate         generate suggestions
  replenishment list [-all]      list suggestions
  replenishment accept -id N     accept a suggestion
  replenishment ignore -id N     ignore a suggestion (asks for confirmation)
`)
}
