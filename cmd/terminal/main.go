// Command terminal is a headless role terminal: it logs in to the order API,
// polls the view for its role and rings the bell when new orders arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/yeremiapane/koko-king/client"
	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

func main() {
	api := flag.String("api", "http://localhost:8080", "order API base url")
	role := flag.String("role", "kitchen", "kitchen | manager | admin | driver")
	view := flag.String("view", "", "view to render, defaults to the role's view")
	user := flag.String("user", "", "staff email/username, or driver phone")
	password := flag.String("password", "", "staff password, or the driver passkey")
	branch := flag.String("branch", "", "branch id to watch, empty for all")
	interval := flag.Duration("interval", convergence.DefaultInterval, "poll interval")
	bell := flag.Bool("bell", true, "ring the terminal bell on new orders")
	flag.Parse()

	utils.InitLogger()

	r := models.Role(*role)
	if !r.Valid() {
		fmt.Fprintln(os.Stderr, "--role must be kitchen, manager, admin or driver")
		os.Exit(2)
	}
	viewName := *view
	if viewName == "" {
		viewName = *role
	}
	render, ok := convergence.ViewFor(viewName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown view %q\n", viewName)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c, err := client.NewClient(*api)
	if err != nil {
		utils.ErrorLogger.Fatal(err)
	}
	if r == models.RoleDriver {
		err = c.DriverLogin(ctx, *user, *password)
	} else {
		err = c.Login(ctx, r, *user, *password)
	}
	if err != nil {
		utils.ErrorLogger.Fatalf("Login failed: %v", err)
	}
	utils.InfoLogger.Infof("Logged in as %s, polling %s every %s", r, viewName, *interval)

	poller := convergence.NewPoller(convergence.Config{
		Name:     viewName,
		Source:   c,
		Filter:   models.OrderFilter{BranchID: *branch},
		View:     render,
		Interval: *interval,
		Notifier: convergence.MultiNotifier{
			convergence.LogNotifier{View: viewName},
			&convergence.BellNotifier{Out: os.Stdout, Enabled: *bell},
		},
	})
	poller.Start(ctx)
	defer poller.Stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			printBoard(poller.Snapshot())
		}
	}
}

func printBoard(orders []models.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\nID\tSTATUS\tTYPE\tCUSTOMER\tTOTAL\n")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.Status, o.DeliveryMethod, o.Customer.Name, utils.FormatCedi(o.Total))
	}
	w.Flush()
}
