package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/gamesave"
	"github.com/bft-labs/gamesave/internal/cliconfig"
	"github.com/bft-labs/gamesave/internal/watch"
	"github.com/bft-labs/gamesave/pkg/format"
	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/save"
)

const longHelp = `Read, write and check obfuscated game save files.

Saves live in <save-root>/<folder>/<slot>. The save root depends on the
platform: $HOME on Linux, ~/Library/Application Support on macOS,
%LOCALAPPDATA% on Windows and the app data directory ($GAMESAVE_DATA_DIR)
on mobile. Override it with --root.

Configuration is read from $HOME/.gamesave/config.toml, then GAMESAVE_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  gamesave --folder mygame save slot1.sav --in state.bin
  gamesave --folder mygame load slot1.sav > state.bin
  gamesave --folder mygame --pack base.zip verify slot1.sav slot2.sav
  gamesave --root ./saves --folder mygame watch
`)

// errCorrupt marks a verify run where at least one slot failed.
var errCorrupt = errors.New("one or more slots failed verification")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	zl      zerolog.Logger
	logger  log.Logger
}

func main() {
	c := newCLI()
	if err := newRootCmd(c).ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errCorrupt) {
			c.zl.Error().Err(err).Msg("gamesave")
		}
		os.Exit(1)
	}
}

func newCLI() *cli {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	c.zl = cliconfig.Logger(c.cfg.LogLevel)
	return c
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:               "gamesave",
		Short:             "Read, write and check obfuscated game save files",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.gamesave/config.toml)")
	pf.StringVar(&c.cfg.Folder, "folder", c.cfg.Folder, "save folder under the save root")
	pf.StringVar(&c.cfg.Root, "root", c.cfg.Root, "directory to use instead of the platform save root")
	pf.StringVar(&c.cfg.Platform, "platform", c.cfg.Platform, "target platform: linux, macos, windows, android, ios (default: host)")
	pf.StringSliceVar(&c.cfg.Packs, "pack", c.cfg.Packs, "zip archive searched before the save root on load (repeatable)")
	pf.DurationVar(&c.cfg.TickInterval, "tick", c.cfg.TickInterval, "interval between orchestrator updates")
	pf.DurationVar(&c.cfg.WatchDebounce, "debounce", c.cfg.WatchDebounce, "quiet period before a changed slot is verified")
	pf.IntVar(&c.cfg.MaxPayload, "max-payload", c.cfg.MaxPayload, "largest payload in bytes to save or load (0: no limit)")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		c.saveCmd(),
		c.loadCmd(),
		c.verifyCmd(),
		c.inspectCmd(),
		c.listCmd(),
		c.watchCmd(),
	)
	return root
}

// loadConfig applies the config file and environment beneath explicitly set
// flags, then validates the result.
func (c *cli) loadConfig(cmd *cobra.Command, _ []string) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.zl = cliconfig.Logger(c.cfg.LogLevel)
	c.logger = log.NewZerologAdapterWithLogger(c.zl)
	c.zl.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) open() (*gamesave.Session, error) {
	return gamesave.Open(gamesave.Config{
		Folder:     c.cfg.Folder,
		Root:       c.cfg.Root,
		Platform:   c.cfg.TargetPlatform(),
		Packs:      c.cfg.Packs,
		MaxPayload: c.cfg.MaxPayload,
		Logger:     c.logger,
	})
}

// outcome captures what a callback reported.
type outcome struct {
	result save.Result
	err    error
}

func (o *outcome) callbacks() save.CallbackFuncs {
	return save.CallbackFuncs{
		Save:  func(r save.Result) { o.result = r },
		Load:  func(r save.Result) { o.result = r },
		Error: func(err error) { o.err = err },
	}
}

func (o *outcome) failure(kind, slot string) error {
	if o.result == save.Success {
		return nil
	}
	if o.err != nil {
		return fmt.Errorf("%s %s: %w", kind, slot, o.err)
	}
	return fmt.Errorf("%s %s failed", kind, slot)
}

func (c *cli) run(ctx context.Context, s *gamesave.Session) error {
	return save.Drive(ctx, s.Orchestrator, c.cfg.TickInterval)
}

func (c *cli) saveCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "save <slot>",
		Short: "Save a payload from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := &outcome{result: save.Failure}
			if err := s.StartSave(data, out.callbacks(), args[0]); err != nil {
				return err
			}
			if err := c.run(cmd.Context(), s); err != nil {
				return err
			}
			if err := out.failure("save", args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", args[0], len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "payload file, - for stdin")
	return cmd
}

func (c *cli) loadCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "load <slot>",
		Short: "Load a slot and write its payload to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var data []byte
			out := &outcome{result: save.Failure}
			if err := s.StartLoad(&data, out.callbacks(), args[0]); err != nil {
				return err
			}
			if err := c.run(cmd.Context(), s); err != nil {
				return err
			}
			if err := out.failure("load", args[0]); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outPath, data)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "destination file, - for stdout")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <slot>...",
		Short: "Load each slot and report whether it is intact",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			failed := 0
			for _, slot := range args {
				var data []byte
				out := &outcome{result: save.Failure}
				if err := s.StartLoad(&data, out.callbacks(), slot); err != nil {
					return err
				}
				if err := c.run(cmd.Context(), s); err != nil {
					return err
				}
				if err := out.failure("load", slot); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: corrupt: %v\n", slot, out.err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d bytes)\n", slot, len(data))
			}
			if failed > 0 {
				return errCorrupt
			}
			return nil
		},
	}
}

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <slot>",
		Short: "Print the decoded header and checksum of a slot, even if corrupt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			fs, err := s.Backend().FS()
			if err != nil {
				return err
			}
			p := s.Backend().Path(c.cfg.Folder, args[0])
			f, err := fs.Open(s.Backend().FilePath(c.cfg.Folder, args[0]))
			if err != nil {
				return fmt.Errorf("open %s: %w", p, err)
			}
			defer f.Close()
			raw, err := io.ReadAll(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}

			r := format.Inspect(raw)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:      %s\n", p)
			fmt.Fprintf(w, "size:      %d\n", r.FileSize)
			if len(raw) >= format.HeaderSize {
				fmt.Fprintf(w, "magic:     %#08x %#08x\n", r.Header.Magic1, r.Header.Magic2)
				fmt.Fprintf(w, "recorded:  size %d, checksum %#08x\n", r.Header.Size, r.Header.Checksum)
				fmt.Fprintf(w, "computed:  checksum %#08x\n", r.Computed)
			}
			if r.Valid() {
				fmt.Fprintln(w, "verdict:   valid")
			} else {
				fmt.Fprintf(w, "verdict:   invalid: %v\n", r.Err)
			}
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the slots in the save folder and packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.List()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	var pattern, statusPath string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Verify slots whenever they change on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			defer s.Close()

			dir, err := s.Dir()
			if err != nil {
				return err
			}

			// Setup signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []watch.Option{
				watch.WithLogger(c.logger),
				watch.WithPattern(pattern),
				watch.WithDebounce(c.cfg.WatchDebounce),
				watch.WithTick(c.cfg.TickInterval),
			}
			if statusPath != "" {
				opts = append(opts, watch.WithStatusFile(watch.NewStatusFile(statusPath)))
			}
			return watch.New(dir, s.Orchestrator, opts...).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "*", "only verify slots matching this glob")
	cmd.Flags().StringVar(&statusPath, "status", "", "record each verification in this JSON file")
	return cmd
}

func readInput(stdin io.Reader, p string) ([]byte, error) {
	if p == "" || p == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(p)
}

func writeOutput(stdout io.Writer, p string, data []byte) error {
	if p == "" || p == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(p, data, 0o600)
}
