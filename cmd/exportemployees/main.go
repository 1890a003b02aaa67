package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"employee-api/internal/config"
	"employee-api/internal/domain"
	"employee-api/internal/employee"
	"employee-api/internal/export"
	"employee-api/internal/logger"
	"employee-api/internal/sftpclient"
	"employee-api/internal/upstream"
)

var errSFTPNotConfigured = errors.New("sftp upload requested but SFTP_HOST / SFTP_USER are not set")

type options struct {
	outPath    string
	format     export.Format
	search     string
	uploadSFTP bool
	now        time.Time
}

// roster is the slice of the facade the export needs.
type roster interface {
	GetAll(ctx context.Context) ([]domain.Employee, error)
	SearchByName(ctx context.Context, query string) ([]domain.Employee, error)
}

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_FILE"), "YAML config file")
		outPath    = flag.String("out", "", "output path (default EMPLOYEES_<date>.<format>)")
		format     = flag.String("format", "csv", "csv or xml")
		search     = flag.String("search", "", "only export employees whose name contains this text")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated roster via SFTP")
	)
	flag.Parse()

	f, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *uploadSFTP && !cfg.SFTPEnabled() {
		log.Fatal(errSFTPNotConfigured)
	}
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	opts := options{outPath: *outPath, format: f, search: *search, uploadSFTP: *uploadSFTP, now: time.Now()}
	if opts.outPath == "" {
		opts.outPath = defaultOutPath(f, opts.now)
	}

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	client.Log = lg.With("component", "upstream")
	svc := employee.NewService(client, lg)

	rootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	n, err := writeRoster(rootCtx, svc, opts)
	if err != nil {
		lg.Fatal("export failed", "error", err)
	}
	lg.Info("roster written", "path", opts.outPath, "format", string(f), "employees", n)

	if opts.uploadSFTP {
		upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer upCancel()

		target, err := uploadRoster(upCtx, cfg, opts.outPath)
		if err != nil {
			lg.Fatal("sftp upload failed", "error", err)
		}
		lg.Info("roster uploaded", "target", target)
	}
}

// uploadRoster sends outPath to the configured SFTP directory and returns the
// remote target. It refuses to dial when SFTP is not configured.
func uploadRoster(ctx context.Context, cfg config.Config, outPath string) (string, error) {
	if !cfg.SFTPEnabled() {
		return "", errSFTPNotConfigured
	}
	upCfg := sftpConfig(cfg)
	remoteName := filepath.Base(outPath)
	if err := sftpclient.UploadFile(ctx, upCfg, outPath, remoteName); err != nil {
		return "", err
	}
	return fmt.Sprintf("sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName), nil
}

// writeRoster fetches the roster through the facade and writes it to disk.
func writeRoster(ctx context.Context, svc roster, opts options) (int, error) {
	var (
		emps []domain.Employee
		err  error
	)
	if opts.search != "" {
		emps, err = svc.SearchByName(ctx, opts.search)
	} else {
		emps, err = svc.GetAll(ctx)
	}
	if err != nil {
		return 0, err
	}
	if err := export.WriteRosterFile(opts.outPath, opts.format, emps, opts.now); err != nil {
		return 0, err
	}
	return len(emps), nil
}

func defaultOutPath(f export.Format, now time.Time) string {
	return fmt.Sprintf("EMPLOYEES_%s.%s", now.Format("20060102"), f)
}

func sftpConfig(cfg config.Config) sftpclient.Config {
	return sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		KnownHostsPath:        cfg.KnownHostsPath(),
	}
}
