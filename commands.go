package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/gigurra/expense-tracker/internal"
	applog "github.com/gigurra/expense-tracker/internal/log"
)

// Exit codes
const (
	exitUsage   = 1 // validation and not-found errors
	exitCorrupt = 2 // data file could not be read back
)

type ListParams struct {
	Config string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data   string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Output string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Show   string `descr:"Which expenses to show" alts:"all,unpaid,paid" strict:"true" default:"all"`
}

type AddParams struct {
	Config  string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data    string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Output  string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Name    string `descr:"Expense name"`
	Amount  string `descr:"Amount, e.g. 1500 or 89,90"`
	DueDate string `descr:"Due date (dd/mm/yyyy)"`
	Kind    string `descr:"Única or Recorrente (single/recurring)" default:"Única"`
}

// SelectParams picks an expense by id, or by the fields shown in the list.
type SelectParams struct {
	Config  string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data    string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Output  string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Target  string `descr:"Expense id as shown by list" positional:"true" optional:"true"`
	Name    string `descr:"Expense name (when no id is given)" optional:"true"`
	Amount  string `descr:"Amount as shown, e.g. R$1500.00 (when no id is given)" optional:"true"`
	DueDate string `descr:"Due date dd/mm/yyyy (when no id is given)" optional:"true"`
	Kind    string `descr:"Única or Recorrente (when no id is given)" optional:"true"`
}

type DueTodayParams struct {
	Config string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data   string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Output string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
}

type ExportParams struct {
	Config string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data   string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Output string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	File   string `descr:"Path of the .xlsx file to write" positional:"true"`
}

type ConfigParams struct {
	Config string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Data   string `descr:"Data location, e.g. despesas.json or sqlite:expenses.db (default from config)" optional:"true"`
	Save   bool   `descr:"Write the effective configuration to the config file" optional:"true"`
}

func listCmd() *cobra.Command {
	return boa.NewCmdT[ListParams]("list").
		WithShort("Show unpaid and paid expenses with totals").
		WithRunFunc(func(p *ListParams) {
			exit(runList(p))
		}).
		ToCobra()
}

func addCmd() *cobra.Command {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add an expense").
		WithLong("Adds an unpaid expense. Kind defaults to Única; Recorrente expenses come back as unpaid after each cycle.").
		WithRunFunc(func(p *AddParams) {
			exit(runAdd(p))
		}).
		ToCobra()
}

func payCmd() *cobra.Command {
	return boa.NewCmdT[SelectParams]("pay").
		WithShort("Mark an expense as paid today").
		WithRunFunc(func(p *SelectParams) {
			exit(runSelect(p, "Paid"))
		}).
		ToCobra()
}

func removeCmd() *cobra.Command {
	return boa.NewCmdT[SelectParams]("remove").
		WithShort("Remove an expense, paid or not").
		WithRunFunc(func(p *SelectParams) {
			exit(runSelect(p, "Removed"))
		}).
		ToCobra()
}

func dueTodayCmd() *cobra.Command {
	return boa.NewCmdT[DueTodayParams]("due-today").
		WithShort("Show unpaid expenses due today").
		WithRunFunc(func(p *DueTodayParams) {
			exit(runDueToday(p))
		}).
		ToCobra()
}

func exportCmd() *cobra.Command {
	return boa.NewCmdT[ExportParams]("export").
		WithShort("Export unpaid and paid expenses to an Excel workbook").
		WithRunFunc(func(p *ExportParams) {
			exit(runExport(p))
		}).
		ToCobra()
}

func configCmd() *cobra.Command {
	return boa.NewCmdT[ConfigParams]("config").
		WithShort("Show the effective configuration").
		WithRunFunc(func(p *ConfigParams) {
			exit(runConfig(p))
		}).
		ToCobra()
}

// session is one CLI invocation's loaded config and open tracker.
type session struct {
	ctx     context.Context
	cfg     *internal.Config
	tracker *internal.Tracker
	logger  *applog.Logger
	output  string
}

func loadConfig(configPath, dataArg string) (*internal.Config, string, error) {
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, configPath, err
	}
	if dataArg != "" {
		cfg.Data = dataArg
	}
	return cfg, configPath, nil
}

func newLogger(cfg *internal.Config) *applog.Logger {
	lc := applog.DefaultConfig()
	lc.Component = applog.ComponentCLI
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

func openSession(configPath, dataArg, output string) (*session, error) {
	ctx := context.Background()

	cfg, configPath, err := loadConfig(configPath, dataArg)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	logger.WithComponent(applog.ComponentConfig).Debug("Loaded configuration",
		applog.FieldPath, configPath,
		applog.FieldCycleDays, cfg.CycleDays)

	backend, path := internal.ParseDataArg(cfg.Data)
	repo, err := internal.OpenRepository(cfg.Data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Opened data", applog.FieldBackend, backend, applog.FieldPath, path)

	tracker, err := internal.Open(ctx, repo, internal.Options{
		CycleDays: cfg.CycleDays,
		Currency:  cfg.ResolveCurrency(),
		Logger:    logger,
	})
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &session{ctx: ctx, cfg: cfg, tracker: tracker, logger: logger, output: output}, nil
}

func (s *session) Close() {
	if err := s.tracker.Close(); err != nil {
		s.logger.Warn("Closing data failed", applog.FieldError, err)
	}
}

func (s *session) json() bool {
	return s.output == internal.OutputJSON
}

func runList(p *ListParams) error {
	s, err := openSession(p.Config, p.Data, p.Output)
	if err != nil {
		return err
	}
	defer s.Close()

	var views []internal.View
	if p.Show != "paid" {
		views = append(views, s.tracker.Unpaid())
	}
	if p.Show != "unpaid" {
		views = append(views, s.tracker.Paid())
	}

	if s.json() {
		return internal.PrintViewsJSON(os.Stdout, s.tracker.Currency(), views...)
	}
	for i, v := range views {
		if i > 0 {
			fmt.Println()
		}
		internal.PrintViewTable(os.Stdout, v)
	}
	return nil
}

func runAdd(p *AddParams) error {
	s, err := openSession(p.Config, p.Data, p.Output)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.tracker.Add(s.ctx, internal.AddInput{
		Name:    p.Name,
		Amount:  p.Amount,
		DueDate: p.DueDate,
		Kind:    p.Kind,
	})
	if err != nil {
		return err
	}
	return s.printResult("Added", e)
}

func runSelect(p *SelectParams, action string) error {
	sel, err := selectionFrom(p)
	if err != nil {
		return err
	}

	s, err := openSession(p.Config, p.Data, p.Output)
	if err != nil {
		return err
	}
	defer s.Close()

	var e internal.Expense
	switch action {
	case "Paid":
		e, err = s.tracker.Pay(s.ctx, sel)
	default:
		e, err = s.tracker.Remove(s.ctx, sel)
	}
	if err != nil {
		return err
	}
	return s.printResult(action, e)
}

// selectionFrom builds a selection from either the positional id or the
// field flags, never both.
func selectionFrom(p *SelectParams) (internal.Selection, error) {
	sel := internal.Selection{
		Name:    p.Name,
		Amount:  p.Amount,
		DueDate: p.DueDate,
		Kind:    p.Kind,
	}
	target := strings.TrimPrefix(strings.TrimSpace(p.Target), "#")
	if target == "" {
		return sel, nil
	}
	if !sel.IsEmpty() {
		return internal.Selection{}, &internal.ValidationError{
			Field:  "selection",
			Reason: "give either an id or --name/--amount/--due-date/--kind, not both",
		}
	}
	id, err := strconv.ParseInt(target, 10, 64)
	if err != nil || id <= 0 {
		return internal.Selection{}, &internal.ValidationError{
			Field:  "id",
			Reason: fmt.Sprintf("%q is not a positive number", p.Target),
		}
	}
	return internal.Selection{ID: id}, nil
}

func runDueToday(p *DueTodayParams) error {
	s, err := openSession(p.Config, p.Data, p.Output)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.tracker.DueToday()
	if errors.Is(err, internal.ErrNothingDue) {
		if s.json() {
			return internal.PrintNothingDueJSON(os.Stdout, s.tracker.Currency(), v)
		}
		fmt.Println(internal.NothingDueMessage)
		return nil
	}
	if err != nil {
		return err
	}

	if s.json() {
		return internal.PrintViewsJSON(os.Stdout, s.tracker.Currency(), v)
	}
	internal.PrintViewTable(os.Stdout, v)
	return nil
}

func runExport(p *ExportParams) error {
	if !strings.HasSuffix(strings.ToLower(p.File), ".xlsx") {
		return &internal.ValidationError{Field: "file", Reason: fmt.Sprintf("%q must end in .xlsx", p.File)}
	}

	s, err := openSession(p.Config, p.Data, p.Output)
	if err != nil {
		return err
	}
	defer s.Close()

	unpaid, paid := s.tracker.Unpaid(), s.tracker.Paid()
	if err := internal.ExportXLSX(p.File, unpaid, paid); err != nil {
		return err
	}
	count := len(unpaid.Rows) + len(paid.Rows)
	s.logger.WithComponent(applog.ComponentExport).Info("Exported expenses",
		applog.FieldOperation, applog.OpExport,
		applog.FieldPath, p.File,
		applog.FieldCount, count)

	if s.json() {
		return internal.PrintViewsJSON(os.Stdout, s.tracker.Currency(), unpaid, paid)
	}
	fmt.Printf("Exported %d expenses to %s\n", count, p.File)
	return nil
}

func runConfig(p *ConfigParams) error {
	cfg, configPath, err := loadConfig(p.Config, p.Data)
	if err != nil {
		return err
	}

	if p.Save {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s\n", configPath)
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	if cfg.Currency == "" {
		fmt.Printf("# currency: %s (detected)\n", cfg.ResolveCurrency().Code)
	}
	return nil
}

func (s *session) printResult(action string, e internal.Expense) error {
	if s.json() {
		return internal.PrintResultJSON(os.Stdout, strings.ToLower(action), e)
	}
	internal.PrintResult(os.Stdout, action, internal.ToRow(e, s.tracker.Currency()))
	return nil
}

// exitCode maps an error to the process exit code for its class.
func exitCode(err error) int {
	if internal.IsCorrupt(err) {
		return exitCorrupt
	}
	return exitUsage
}

// exit prints err and terminates with the exit code for its class.
func exit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	code := exitCode(err)
	if code == exitCorrupt {
		fmt.Fprintln(os.Stderr, "The data file was left untouched. Fix or move it, then try again.")
	}
	os.Exit(code)
}
