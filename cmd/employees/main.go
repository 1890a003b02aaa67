package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"employee-api/internal/apperr"
	"employee-api/internal/config"
	"employee-api/internal/devutil"
	"employee-api/internal/domain"
	"employee-api/internal/employee"
	"employee-api/internal/logger"
	"employee-api/internal/upstream"
	"employee-api/internal/validation"
)

const usage = `usage: employees [flags] <command> [args]

commands:
  get <id>
  list
  search <text>
  highest-salary
  top-earners
  create <name> <salary> <age> <title> <email>
  delete <id>
`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", apperr.KindOf(err), err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("employees", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	var (
		configPath = fs.String("config", "", "YAML config file (defaults to $CONFIG_FILE)")
		baseURL    = fs.String("base-url", "", "override the upstream base url")
		fields     = fs.String("fields", "", "comma separated keys to keep in record output")
		timeout    = fs.Duration("timeout", time.Minute, "overall command timeout")
		verbose    = fs.Bool("v", false, "log upstream calls to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.UpstreamBaseURL = *baseURL
	}

	lg := logger.Nop()
	if *verbose {
		if lg, err = logger.New("dev"); err != nil {
			return err
		}
		defer lg.Sync()
	}

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	client.Log = lg
	svc := employee.NewService(client, lg)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	out, err := dispatch(ctx, svc, fs.Arg(0), fs.Args()[1:])
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return err
	}
	return printJSON(stdout, project(out, devutil.ParseFields(*fields)))
}

func dispatch(ctx context.Context, svc *employee.Service, cmd string, args []string) (any, error) {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s: expected %d argument(s), got %d: %w", cmd, n, len(args), errUsage)
		}
		return nil
	}

	switch cmd {
	case "get":
		if err := need(1); err != nil {
			return nil, err
		}
		return svc.GetByID(ctx, args[0])
	case "list":
		if err := need(0); err != nil {
			return nil, err
		}
		return svc.GetAll(ctx)
	case "search":
		if err := need(1); err != nil {
			return nil, err
		}
		return svc.SearchByName(ctx, args[0])
	case "highest-salary":
		if err := need(0); err != nil {
			return nil, err
		}
		return svc.HighestSalary(ctx)
	case "top-earners":
		if err := need(0); err != nil {
			return nil, err
		}
		return svc.TopTenEarners(ctx)
	case "create":
		if err := need(5); err != nil {
			return nil, err
		}
		req, err := createRequest(args)
		if err != nil {
			return nil, err
		}
		if err := validation.Struct(req); err != nil {
			return nil, err
		}
		return svc.Create(ctx, req)
	case "delete":
		if err := need(1); err != nil {
			return nil, err
		}
		return svc.DeleteByID(ctx, args[0])
	default:
		return nil, fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func createRequest(args []string) (domain.CreateEmployeeRequest, error) {
	salary, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.CreateEmployeeRequest{}, apperr.Validation("", map[string]string{"salary": "must be an integer"})
	}
	age, err := strconv.Atoi(args[2])
	if err != nil {
		return domain.CreateEmployeeRequest{}, apperr.Validation("", map[string]string{"age": "must be an integer"})
	}
	return domain.CreateEmployeeRequest{Name: args[0], Salary: salary, Age: age, Title: args[3], Email: args[4]}, nil
}

// project narrows records to keys; other results pass through.
func project(v any, keys []string) any {
	if len(keys) == 0 {
		return v
	}
	switch t := v.(type) {
	case domain.Employee:
		return devutil.Pick(t, keys...)
	case []domain.Employee:
		return devutil.PickEach(t, keys...)
	default:
		return v
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
