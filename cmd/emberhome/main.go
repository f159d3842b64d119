// Ember Core - Smart Home Simulation
//
// This is the main entry point for the Ember Core application. Ember Core
// simulates a smart home: devices are created through family factories,
// extended with behaviour wrappers (scheduling, security gating, energy
// accounting), and driven by a synchronous event pipeline with an
// automation rule engine. An interactive console fronts the whole thing.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rowanveitch/ember-core/internal/automation"
	"github.com/rowanveitch/ember-core/internal/device"
	"github.com/rowanveitch/ember-core/internal/event"
	"github.com/rowanveitch/ember-core/internal/infrastructure/config"
	"github.com/rowanveitch/ember-core/internal/infrastructure/database"
	"github.com/rowanveitch/ember-core/internal/infrastructure/logging"
	"github.com/rowanveitch/ember-core/internal/infrastructure/mqtt"
	"github.com/rowanveitch/ember-core/internal/infrastructure/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired pipeline the console drives.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	registry *device.Registry
	catalog  *device.Catalog
	bus      *event.Bus
	engine   *automation.Engine
	eventLog *event.Log
	notifier *event.Notifier
	security *event.SecuritySystem
	climate  *event.EnvironmentMonitor

	// Wrapper handles by device ID, so console commands can reach the
	// behaviour layers directly.
	armed  map[string]*device.Security
	energy map[string]*device.EnergyMonitor
	timers map[string]*device.Timer

	// Optional sinks, nil when disabled.
	telemetryClient *telemetry.Client
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Ember Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, usedDefaults, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if usedDefaults {
		log.Info("config file not found, using defaults", "path", configPath)
	} else {
		log.Info("configuration loaded", "path", configPath)
	}

	log = logging.New(cfg.Logging, version)

	a := &app{
		cfg:      cfg,
		log:      log,
		registry: device.NewRegistry(log),
		catalog:  device.DefaultCatalog(),
		bus:      event.NewBus(log),
		engine:   automation.NewEngine(log),
		eventLog: event.NewLog(cfg.Simulation.EventLogCapacity),
		notifier: event.NewNotifier("console", cfg.Simulation.NotificationCapacity),
		armed:    make(map[string]*device.Security),
		energy:   make(map[string]*device.EnergyMonitor),
		timers:   make(map[string]*device.Timer),
	}

	// Subscription order is delivery order: notifications and the log see
	// each event before the rule engine reacts to it.
	a.bus.Subscribe(a.notifier)
	a.bus.Subscribe(a.eventLog)
	a.bus.Subscribe(a.engine)

	a.security = event.NewSecuritySystem(a.bus, "security")
	a.climate = event.NewEnvironmentMonitor(a.bus, "climate", 16.0, 26.0, 70.0)

	// Optional SQLite event history
	if cfg.History.Enabled {
		db, dbErr := database.Open(database.Config{
			Path:        cfg.History.Path,
			WALMode:     cfg.History.WALMode,
			BusyTimeout: cfg.History.BusyTimeout,
		})
		if dbErr != nil {
			return fmt.Errorf("opening history database: %w", dbErr)
		}
		defer func() {
			log.Info("closing history database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing history database", "error", closeErr)
			}
		}()

		repo, repoErr := event.NewSQLiteRepository(db.DB)
		if repoErr != nil {
			return fmt.Errorf("initialising event history: %w", repoErr)
		}
		a.bus.Subscribe(event.NewRecorder(repo))
		log.Info("event history enabled", "path", cfg.History.Path)
	} else {
		log.Info("event history disabled")
	}

	// Optional MQTT event mirror
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetOnConnect(func() { log.Info("MQTT reconnected") })
		mqttClient.SetOnDisconnect(func(err error) { log.Warn("MQTT disconnected", "error", err) })

		a.bus.Subscribe(event.NewMirror(mqttClient, mqtt.EventTopic, byte(cfg.MQTT.QoS)))
		log.Info("MQTT mirror enabled",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		)
	} else {
		log.Info("MQTT mirror disabled")
	}

	// Optional InfluxDB telemetry
	if cfg.Telemetry.Enabled {
		telemetryClient, telErr := telemetry.Connect(cfg.Telemetry)
		if telErr != nil {
			return fmt.Errorf("connecting to telemetry: %w", telErr)
		}
		defer func() {
			log.Info("closing telemetry connection")
			if closeErr := telemetryClient.Close(); closeErr != nil {
				log.Error("error closing telemetry", "error", closeErr)
			}
		}()
		telemetryClient.SetOnError(func(err error) {
			log.Error("telemetry write error", "error", err)
		})
		a.telemetryClient = telemetryClient
		a.bus.Subscribe(telemetrySubscriber{client: telemetryClient})
		log.Info("telemetry enabled", "url", cfg.Telemetry.URL)
	} else {
		log.Info("telemetry disabled")
	}

	// A starter rule so a fresh site reacts to motion out of the box.
	if ruleErr := a.engine.AddRule(&automation.Rule{
		ID:        "motion-lights-on",
		Name:      "Lights on when motion is detected",
		Condition: automation.OnType(event.TypeMotionDetected),
		Action:    automation.ApplyStateByKind(a.registry, device.KindLight, device.State{"power": true}),
	}); ruleErr != nil {
		return fmt.Errorf("adding default rule: %w", ruleErr)
	}

	log.Info("initialisation complete")
	return a.console(ctx)
}

// telemetrySubscriber forwards every event to InfluxDB as a point. Device
// state changes additionally write one point per numeric field of the new
// state, so brightness and setpoint curves can be graphed.
type telemetrySubscriber struct {
	client *telemetry.Client
}

func (telemetrySubscriber) Name() string { return "telemetry" }

func (s telemetrySubscriber) Handle(e event.Event) error {
	s.client.WriteEventPoint(string(e.Type), e.Source)

	if e.Type != event.TypeDeviceStateChanged {
		return nil
	}
	deviceID, _ := e.Payload.String("device_id")
	after, ok := e.Payload["after"].(map[string]any)
	if !ok {
		return nil
	}
	for field, raw := range after {
		switch v := raw.(type) {
		case float64:
			s.client.WriteStatePoint(deviceID, field, v)
		case int:
			s.client.WriteStatePoint(deviceID, field, float64(v))
		}
	}
	return nil
}

// console runs the interactive command loop until the context is
// cancelled or the user quits.
func (a *app) console(ctx context.Context) error {
	fmt.Printf("Ember Core %s (%s)\n", version, a.cfg.Site.Name)
	fmt.Println("Type 'help' for commands.")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			a.log.Info("shutdown signal received")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := a.dispatch(strings.Fields(line))
			if err != nil {
				fmt.Printf("error: %v\n", err)
			}
			if quit {
				a.log.Info("console closed")
				return nil
			}
		}
	}
}

// dispatch runs one console command. The bool result requests exit.
func (a *app) dispatch(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		printHelp()
	case "quit", "exit":
		return true, nil
	case "create":
		return false, a.cmdCreate(rest)
	case "list":
		a.cmdList()
	case "show":
		return false, a.cmdShow(rest)
	case "on":
		return false, a.cmdPower(rest, true)
	case "off":
		return false, a.cmdPower(rest, false)
	case "set":
		return false, a.cmdSet(rest)
	case "arm":
		return false, a.cmdArm(rest, true)
	case "disarm":
		return false, a.cmdArm(rest, false)
	case "energy":
		return false, a.cmdEnergy(rest)
	case "schedule":
		return false, a.cmdSchedule(rest)
	case "cancel":
		return false, a.cmdCancel(rest)
	case "tick":
		a.cmdTick()
	case "kinds":
		a.cmdKinds()
	case "motion":
		return false, a.cmdMotion(rest)
	case "door":
		return false, a.cmdDoor(rest)
	case "temp":
		return false, a.cmdTemp(rest)
	case "alert":
		return false, a.cmdAlert(rest)
	case "log":
		a.cmdLog()
	case "notifications":
		a.cmdNotifications()
	case "rules":
		a.cmdRules()
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func printHelp() {
	fmt.Print(`Commands:
  create <kind> <name>     create a device (kinds: light, thermostat, lock, camera, motion_sensor)
  list                     list devices
  show <id>                show device state
  on <id> | off <id>       switch power
  set <id> <key> <value>   apply a state change
  arm <id> | disarm <id>   toggle security gating
  energy <id>              show accrued energy usage
  schedule <id> <secs> <key> <value>
                           queue a state change for <secs> seconds from now
  cancel <id> <sched-id>   cancel one queued change
  tick                     fire every queued change that has come due
  kinds                    list device kinds and capabilities
  motion <id>              simulate motion at a sensor
  door <open|close> <id>   simulate a door contact
  temp <id> <celsius>      report a temperature reading
  alert <message...>       raise a critical alert
  log                      show the event log
  notifications            show rendered notifications
  rules                    list automation rules
  quit                     exit
`)
}

func (a *app) cmdCreate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <kind> <name>")
	}
	kind := device.Kind(args[0])
	name := strings.Join(args[1:], " ")

	d, err := a.catalog.Create(kind, name, nil)
	if err != nil {
		return err
	}

	// Every device gets the full behaviour stack. Order matters: security
	// sits outermost so rejected commands are never charged, announced,
	// or recorded.
	var sink device.UsageSink
	if a.telemetryClient != nil {
		sink = energySink{client: a.telemetryClient}
	}
	monitored := device.NewEnergyMonitor(d, a.cfg.Simulation.EnergyCostPerCommand, sink)
	tracked := device.NewHistory(monitored, a.cfg.Simulation.DeviceHistoryCapacity)
	announced := device.NewNotifier(tracked, event.NewStatePublisher(a.bus), nil)
	timed := device.NewTimer(announced, device.WithScheduleErrorHandler(func(id string, err error) {
		a.log.Warn("scheduled change failed", "schedule_id", id, "error", err)
	}))
	gated := device.NewSecurity(timed)

	if err := a.registry.Add(gated); err != nil {
		return err
	}
	a.armed[d.ID()] = gated
	a.energy[d.ID()] = monitored
	a.timers[d.ID()] = timed

	fmt.Printf("created %s %q with ID %s\n", kind, name, d.ID())
	return nil
}

// energySink adapts the telemetry client to the device layer's usage
// reporting interface.
type energySink struct {
	client *telemetry.Client
}

func (s energySink) RecordUsage(deviceID string, usage float64) {
	s.client.WriteEnergyPoint(deviceID, usage)
}

func (a *app) cmdList() {
	devices := a.registry.List()
	if len(devices) == 0 {
		fmt.Println("no devices")
		return
	}
	for _, d := range devices {
		on := ""
		if device.IsOn(d) {
			on = " [on]"
		}
		fmt.Printf("  %-38s %-14s %s%s\n", d.ID(), d.Kind(), d.Name(), on)
	}
}

func (a *app) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	d, err := a.registry.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, %q)\n", d.ID(), d.Kind(), d.Name())
	fmt.Printf("  capabilities: %v\n", d.Capabilities())
	for key, value := range d.State() {
		fmt.Printf("  %s = %v\n", key, value)
	}
	return nil
}

func (a *app) cmdPower(args []string, on bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: on|off <id>")
	}
	return a.registry.ApplyState(args[0], device.State{"power": on})
}

func (a *app) cmdSet(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set <id> <key> <value>")
	}
	return a.registry.ApplyState(args[0], device.State{args[1]: parseValue(args[2])})
}

// parseValue turns console input into the richest type it parses as.
func parseValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func (a *app) cmdArm(args []string, arm bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: arm|disarm <id>")
	}
	gated, ok := a.armed[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, args[0])
	}
	if arm {
		gated.Arm()
		fmt.Println("armed")
	} else {
		gated.Disarm()
		fmt.Println("disarmed")
	}
	return nil
}

func (a *app) cmdEnergy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: energy <id>")
	}
	monitored, ok := a.energy[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, args[0])
	}
	fmt.Printf("%d commands, %.1f units\n", monitored.Commands(), monitored.Usage())
	return nil
}

func (a *app) cmdSchedule(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: schedule <id> <secs> <key> <value>")
	}
	timed, ok := a.timers[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, args[0])
	}
	secs, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parsing delay: %w", err)
	}
	id, err := timed.Schedule(time.Now().Add(time.Duration(secs)*time.Second),
		device.State{args[2]: parseValue(args[3])})
	if err != nil {
		return err
	}
	fmt.Printf("scheduled %s\n", id)
	return nil
}

func (a *app) cmdCancel(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cancel <id> <sched-id>")
	}
	timed, ok := a.timers[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, args[0])
	}
	if !timed.Cancel(args[1]) {
		return fmt.Errorf("no schedule %s on device %s", args[1], args[0])
	}
	fmt.Println("cancelled")
	return nil
}

// cmdTick fires due schedules across all devices. The pipeline has no
// background goroutines, so time only advances when the operator asks.
func (a *app) cmdTick() {
	now := time.Now()
	fired := 0
	for _, timed := range a.timers {
		fired += timed.FireDue(now)
	}
	fmt.Printf("%d scheduled changes fired\n", fired)
}

func (a *app) cmdKinds() {
	fmt.Println("kinds:")
	for _, kind := range a.catalog.Kinds() {
		fmt.Printf("  %s\n", kind)
	}
	fmt.Println("capabilities:")
	for _, c := range device.AllCapabilities() {
		fmt.Printf("  %s\n", c)
	}
}

func (a *app) cmdMotion(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: motion <id>")
	}
	if _, err := a.registry.Get(args[0]); err != nil {
		return err
	}
	delivered := a.security.ReportMotion(args[0])
	fmt.Printf("motion reported, %d subscribers notified\n", delivered)
	return nil
}

func (a *app) cmdDoor(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: door <open|close> <id>")
	}
	switch args[0] {
	case "open":
		a.security.ReportDoorOpened(args[1])
	case "close":
		a.security.ReportDoorClosed(args[1])
	default:
		return fmt.Errorf("usage: door <open|close> <id>")
	}
	return nil
}

func (a *app) cmdTemp(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: temp <id> <celsius>")
	}
	celsius, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing temperature: %w", err)
	}
	if a.climate.ReportTemperature(args[0], celsius) {
		fmt.Println("threshold event published")
	} else {
		fmt.Println("reading in range, no event")
	}
	return nil
}

func (a *app) cmdAlert(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alert <message...>")
	}
	a.security.RaiseAlert(strings.Join(args, " "), "critical")
	return nil
}

func (a *app) cmdLog() {
	events := a.eventLog.Events()
	if len(events) == 0 {
		fmt.Println("no events")
		return
	}
	for _, e := range events {
		fmt.Printf("  %s\n", e)
	}
}

func (a *app) cmdNotifications() {
	notifications := a.notifier.Notifications()
	if len(notifications) == 0 {
		fmt.Println("no notifications")
		return
	}
	for _, n := range notifications {
		fmt.Printf("  %s\n", n.Message)
	}
}

func (a *app) cmdRules() {
	for _, r := range a.engine.Rules() {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		fmt.Printf("  %-20s %-40s [%s]\n", r.ID, r.Name, state)
	}
}

// loadConfig reads the configuration file, falling back to the built-in
// defaults when no file exists at path. Any other failure (unreadable
// file, bad YAML, validation) is an error. The bool reports whether the
// defaults were used.
func loadConfig(path string) (*config.Config, bool, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), true, nil
		}
		return nil, false, err
	}
	return cfg, false, nil
}

// getConfigPath returns the configuration file path.
// Uses the EMBERHOME_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("EMBERHOME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
