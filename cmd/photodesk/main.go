package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/photodesk/internal/app"
	"github.com/nhle/photodesk/internal/backup"
	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/remote"
	"github.com/nhle/photodesk/internal/remote/firestore"
	"github.com/nhle/photodesk/internal/store"
	"github.com/nhle/photodesk/internal/studio"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/ui/settings"
)

const usage = `Uso: photodesk [-config archivo] [comando]

Comandos:
  tui                      abre el panel (por defecto)
  export [archivo]         exporta todos los datos (JSON o YAML según la extensión)
  import [-resync] archivo importa datos y sobrescribe los actuales
  ics [archivo]            exporta las sesiones como calendario iCalendar
  resync                   reemplaza los datos de la nube con los locales
  clear [-resync]          borra todos los datos locales
`

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := run(*configPath, *logPath, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "photodesk:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	theme.Apply(cfg.Display.Theme)

	command := "tui"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	// The TUI owns the terminal, so its logs go to a file or nowhere.
	if command == "tui" {
		if logPath == "" {
			log.SetOutput(io.Discard)
		} else {
			f, err := tea.LogToFile(logPath, "photodesk")
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	var dialer remote.Dialer
	if cfg.Remote.Enabled {
		baseURL := cfg.Remote.BaseURL
		if baseURL == "" {
			baseURL = firestore.DefaultBaseURL
		}
		dialer = firestore.Dialer(baseURL, time.Duration(cfg.Remote.TimeoutSec)*time.Second)
	}

	st, err := studio.Open(ctx, studio.Options{
		Store:  s,
		Dialer: dialer,
		Vault:  credential.NewKeyring(),
	})
	if err != nil {
		return err
	}

	switch command {
	case "tui":
		return runTUI(ctx, st, cfg)
	case "export":
		path := argOr(args, backup.DefaultFileName)
		if err := st.ExportFile(path); err != nil {
			return err
		}
		fmt.Println("Datos exportados a", path)
	case "ics":
		path := argOr(args, settings.CalendarFileName)
		if err := st.ExportCalendarFile(path); err != nil {
			return err
		}
		fmt.Println("Calendario exportado a", path)
	case "import":
		return runImport(ctx, st, args)
	case "resync":
		if err := st.ConnectStored(ctx); err != nil {
			return err
		}
		t, err := st.RequestResync()
		if err != nil {
			return err
		}
		if err := st.Execute(ctx, t); err != nil {
			return err
		}
		fmt.Println("Datos sincronizados con la nube")
	case "clear":
		return runClear(ctx, st, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func runTUI(ctx context.Context, st *studio.Studio, cfg *model.AppConfig) error {
	if cfg.Backup.Schedule != "" {
		format, err := backup.ParseFormat(cfg.Backup.Format)
		if err != nil {
			return err
		}
		sched, err := backup.NewScheduler(cfg.Backup.Schedule, cfg.Backup.Dir, format, st.Snapshot)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	m := app.New(ctx, st, app.Options{
		UpcomingLimit: cfg.Dashboard.UpcomingLimit,
		AutoConnect:   cfg.Remote.Enabled,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// Passing the command on the command line is the confirmation, so the
// tickets below are executed right away.

func runImport(ctx context.Context, st *studio.Studio, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	resync := fs.Bool("resync", false, "replace the cloud data after importing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import needs exactly one file")
	}
	if *resync {
		connectForResync(ctx, st)
	}

	t, err := st.RequestImportFile(fs.Arg(0), *resync)
	if err != nil {
		return err
	}
	if err := st.Execute(ctx, t); err != nil {
		return err
	}
	fmt.Println("Datos importados desde", fs.Arg(0))
	return nil
}

func runClear(ctx context.Context, st *studio.Studio, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	resync := fs.Bool("resync", false, "also reset the cloud data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *resync {
		connectForResync(ctx, st)
	}

	if err := st.Execute(ctx, st.RequestClearAll(*resync)); err != nil {
		return err
	}
	fmt.Println("Datos eliminados")
	return nil
}

// connectForResync connects with stored credentials. Failing to connect
// leaves the local operation to run without the resync.
func connectForResync(ctx context.Context, st *studio.Studio) {
	if err := st.ConnectStored(ctx); err != nil {
		log.Printf("cloud unavailable, continuing locally: %v", err)
	}
}

func argOr(args []string, def string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return def
}
