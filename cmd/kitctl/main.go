// kitctl runs allocator operations against the configured backend from a
// terminal: one allocation, an employee's holdings, a dry-run plan, or the
// kit catalog.
//
//	kitctl assign -employee E-17 -name "Ada Lovelace" -title "Software Engineer"
//	kitctl holdings -employee E-17
//	kitctl plan -title "Software Engineer"
//	kitctl kits
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"kit-allocator/internal/app"
	"kit-allocator/internal/config"
	"kit-allocator/internal/logging"
)

const usage = `usage: kitctl <command> [flags]

commands:
  assign    -employee ID -title TITLE [-name NAME]   allocate a starter kit
  holdings  -employee ID                             list assets held by an employee
  plan      -title TITLE                             show what an allocation would take
  kits                                               list configured kits
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	employee := fs.String("employee", "", "employee id")
	name := fs.String("name", "", "employee display name (assign)")
	title := fs.String("title", "", "job title")

	// arguments are checked before any backend is opened
	switch cmd {
	case "assign", "holdings", "plan", "kits":
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}
	switch {
	case cmd == "assign" && (*employee == "" || *title == ""):
		return fmt.Errorf("assign needs -employee and -title")
	case cmd == "holdings" && *employee == "":
		return fmt.Errorf("holdings needs -employee")
	case cmd == "plan" && *title == "":
		return fmt.Errorf("plan needs -title")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreBackend == config.BackendMemory {
		fmt.Fprintln(os.Stderr, warnStyle.Render("warning: memory backend, inventory starts empty"))
	}

	logger, err := logging.New(os.Stderr, "warn", cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.MetricsEnabled = false
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	switch cmd {
	case "assign":
		res := a.Service.AutoAssignStarterKit(ctx, *employee, *name, *title)
		fmt.Fprintln(out, renderResult(*employee, res))
		if res.Err != nil {
			return res.Err
		}

	case "holdings":
		held, err := a.Service.Holdings(ctx, *employee)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderHoldings(*employee, held))

	case "plan":
		plan, err := a.Service.Preview(ctx, *title)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderPlan(plan))

	case "kits":
		kits, err := a.Catalog.ListKits(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderKits(kits))
	}
	return nil
}
