// cmd/keepoutd/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cncplugins/atci-keepout/internal/config"
	"github.com/cncplugins/atci-keepout/internal/hal"
	"github.com/cncplugins/atci-keepout/internal/hal/modbusio"
	"github.com/cncplugins/atci-keepout/internal/keepout"
	"github.com/cncplugins/atci-keepout/internal/nvs"
	"github.com/cncplugins/atci-keepout/internal/sensors"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Optional .env overrides; absence is fine.
	_ = godotenv.Load()

	var profilePath string

	root := &cobra.Command{
		Use:           "keepoutd",
		Short:         "ATC keepout-zone enforcement harness",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&profilePath, "profile", "keepoutd.yaml", "machine profile path")

	root.AddCommand(
		runCmd(log, &profilePath),
		settingsCmd(&profilePath),
		restoreCmd(log, &profilePath),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadProfile reads, validates and normalizes the machine profile, applying
// environment overrides on top.
func loadProfile(path string) (*Profile, error) {
	p, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("KEEPOUT_NVS_PATH"); v != "" {
		p.NVSPath = v
	}
	if v := os.Getenv("KEEPOUT_MODBUS_ENDPOINT"); v != "" {
		p.Modbus.Endpoint = v
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	Normalize(p)
	return p, nil
}

func runCmd(log *logrus.Logger, profilePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the enforcement core against the console and I/O module",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(*profilePath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// ---- sensor inputs ----
			var inputs sensors.Inputs
			if prof.Modbus.Endpoint != "" {
				bank, err := modbusio.Dial(modbusio.Config{
					Endpoint: prof.Modbus.Endpoint,
					UnitID:   prof.Modbus.UnitID,
					Timeout:  time.Duration(prof.Modbus.TimeoutMs) * time.Millisecond,
				})
				if err != nil {
					return err
				}
				defer bank.Close()

				inputs = sensors.Inputs{
					Rack:       bank.Input(prof.Modbus.Inputs.Rack),
					Drawbar:    bank.Input(prof.Modbus.Inputs.Drawbar),
					ToolSensor: bank.Input(prof.Modbus.Inputs.ToolSensor),
					Pressure:   bank.Input(prof.Modbus.Inputs.Pressure),
				}
				log.WithField("endpoint", prof.Modbus.Endpoint).Info("sensor I/O module connected")
			} else {
				log.Info("no I/O module configured, sensors read as idle")
			}

			// ---- host collaborators ----
			loop := newEventLoop()
			planner := newPlannerStub(prof.Axes)
			registry := &memRegistry{}
			store := nvs.NewFileStore(prof.NVSPath, config.RecordSize)

			plugin, err := keepout.New(keepout.Deps{
				Store:     store,
				Messenger: &logMessenger{log: log},
				Position:  planner,
				Scheduler: loop,
				Inputs:    inputs,
			})
			if err != nil {
				return err
			}

			dispatch := hal.NewDispatch()
			plugin.Attach(dispatch, registry)

			if err := watchRecord(ctx, loop, prof.NVSPath, log, plugin.Load); err != nil {
				log.WithError(err).Warn("settings record watch unavailable")
			}

			con := &console{
				loop:     loop,
				dispatch: dispatch,
				planner:  planner,
				registry: registry,
				out:      os.Stdout,
			}
			go con.run(os.Stdin)

			log.WithFields(logrus.Fields{
				"profile": *profilePath,
				"nvs":     prof.NVSPath,
			}).Info("keepoutd running, type 'home' then 'jog X.. Y..'")

			loop.Run(ctx)
			return nil
		},
	}
}

func settingsCmd(profilePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the settings entries and their stored values",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(*profilePath)
			if err != nil {
				return err
			}

			store := nvs.NewFileStore(prof.NVSPath, config.RecordSize)
			s, err := config.Read(store)
			if err != nil {
				s = config.Default()
				fmt.Printf("stored record unusable (%v), showing defaults\n", err)
			}

			values := map[int]string{
				config.SettingPluginFlags: flagsValue(s.Flags),
				config.SettingXMin:        fmt.Sprintf("%.2f", s.XMin),
				config.SettingYMin:        fmt.Sprintf("%.2f", s.YMin),
				config.SettingXMax:        fmt.Sprintf("%.2f", s.XMax),
				config.SettingYMax:        fmt.Sprintf("%.2f", s.YMax),
			}

			for _, d := range config.Descriptors() {
				fmt.Printf("$%d=%s\t(%s", d.ID, values[d.ID], d.Name)
				if d.Unit != "" {
					fmt.Printf(", %s", d.Unit)
				}
				fmt.Println(")")
			}
			return nil
		},
	}
}

func restoreCmd(log *logrus.Logger, profilePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Reset the stored settings record to factory defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(*profilePath)
			if err != nil {
				return err
			}

			store := nvs.NewFileStore(prof.NVSPath, config.RecordSize)
			if err := config.Write(store, config.Default()); err != nil {
				return err
			}
			log.WithField("nvs", prof.NVSPath).Info("settings restored to defaults")
			return nil
		},
	}
}

func flagsValue(f config.Flags) string {
	var bits []string
	if f.PluginEnabled {
		bits = append(bits, "enable")
	}
	if f.MonitorRackPresence {
		bits = append(bits, "rack")
	}
	if f.MonitorTCMacro {
		bits = append(bits, "tc-macro")
	}
	if len(bits) == 0 {
		return "0"
	}
	return strings.Join(bits, "|")
}
