// Command objectvalidate validates JSON objects against schema documents.
//
// Usage:
//
//	objectvalidate check -schema user.yaml [-fail-fast] [-force-required true|false] [FILE...]
//	objectvalidate openapi -schema user.yaml
//	objectvalidate lint -schema user.yaml
//	objectvalidate serve [-addr :8080] [-schemas DIR]
//
// Defaults come from OBJECTVALIDATE_* environment variables and an optional
// .env file. Flags win over both.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	json "github.com/goccy/go-json"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/internal/config"
	"github.com/Gobd/objectvalidation/internal/logger"
	"github.com/Gobd/objectvalidation/internal/server"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	cfg            config.Config
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
	e := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, cfg: cfg}
	os.Exit(e.run(os.Args[1:]))
}

func (e env) run(args []string) int {
	if len(args) < 1 {
		e.usage()
		return exitUsage
	}
	switch args[0] {
	case "check":
		return e.checkCmd(args[1:])
	case "openapi":
		return e.openapiCmd(args[1:])
	case "lint":
		return e.lintCmd(args[1:])
	case "serve":
		return e.serveCmd(args[1:])
	default:
		e.usage()
		return exitUsage
	}
}

func (e env) usage() {
	fmt.Fprintln(e.stderr, "objectvalidate\n\nUsage:\n  objectvalidate check -schema FILE [-fail-fast] [-force-required true|false] [FILE...]\n  objectvalidate openapi -schema FILE\n  objectvalidate lint -schema FILE\n  objectvalidate serve [-addr ADDR] [-schemas DIR]")
}

func (e env) newLogger() *slog.Logger {
	return e.cfg.Logger(logger.WithOutput(e.stderr))
}

func (e env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func (e env) checkCmd(args []string) int {
	fs := e.flags("check")
	var schemaPath, force string
	var failFast bool
	fs.StringVar(&schemaPath, "schema", "", "schema document")
	fs.BoolVar(&failFast, "fail-fast", e.cfg.FailFast, "stop at the first violation of each object")
	fs.StringVar(&force, "force-required", e.cfg.ForceRequired, "override every required facet: true or false")
	if err := fs.Parse(args); err != nil || schemaPath == "" {
		fs.Usage()
		return exitUsage
	}

	opts := ov.Options{FailFast: failFast}
	if force != "" {
		b, err := strconv.ParseBool(force)
		if err != nil {
			fmt.Fprintf(e.stderr, "-force-required: %v\n", err)
			return exitUsage
		}
		opts.ForceRequired = ov.Force(b)
	}

	s, err := ov.LoadSchemaFile(schemaPath)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	log := e.newLogger()
	code := exitOK
	for _, input := range inputs {
		obj, err := e.read(input)
		if err != nil {
			fmt.Fprintf(e.stderr, "%s: %v\n", input, err)
			return exitUsage
		}

		inputLog := log.With(slog.String("input", input))
		opts.Reporter = ov.LogReporter(inputLog)
		if _, err := ov.Validate(obj, s, opts); err != nil {
			var v *ov.Violation
			if errors.As(err, &v) {
				// Fail-fast violations are returned, not reported.
				opts.Reporter.Report(v)
				fmt.Fprintf(e.stdout, "%s: invalid: %s\n", input, v)
			} else {
				vs, _ := ov.AsViolations(err)
				fmt.Fprintf(e.stdout, "%s: invalid (%s)\n", input, plural(len(vs), "violation"))
			}
			code = exitInvalid
			continue
		}
		fmt.Fprintf(e.stdout, "%s: valid\n", input)
	}
	return code
}

func (e env) read(input string) (ov.Object, error) {
	if input == "-" {
		return ov.Decode(e.stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ov.Decode(f)
}

func (e env) openapiCmd(args []string) int {
	fs := e.flags("openapi")
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema document")
	if err := fs.Parse(args); err != nil || schemaPath == "" {
		fs.Usage()
		return exitUsage
	}

	s, err := ov.LoadSchemaFile(schemaPath)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	}
	schema, err := s.OpenAPI()
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	}
	fmt.Fprintln(e.stdout, string(out))
	return exitOK
}

func (e env) lintCmd(args []string) int {
	fs := e.flags("lint")
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema document")
	if err := fs.Parse(args); err != nil || schemaPath == "" {
		fs.Usage()
		return exitUsage
	}

	_, err := ov.LoadSchemaFile(schemaPath)
	if err == nil {
		fmt.Fprintf(e.stdout, "%s: ok\n", schemaPath)
		return exitOK
	}

	errs, ok := ov.AsValidationErrors(err)
	if !ok {
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	}
	props := make([]string, 0, len(errs))
	for prop := range errs {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		fmt.Fprintf(e.stdout, "%s: %s: %v\n", schemaPath, prop, errs[prop])
	}
	return exitInvalid
}

func (e env) serveCmd(args []string) int {
	fs := e.flags("serve")
	var addr, dir string
	fs.StringVar(&addr, "addr", e.cfg.Addr, "listen address")
	fs.StringVar(&dir, "schemas", e.cfg.SchemaDir, "directory of schema documents")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return exitUsage
	}

	log := e.newLogger()
	schemas, err := ov.LoadSchemaDir(dir)
	if err != nil {
		log.Error("cannot load schemas", logger.Error(err))
		return exitUsage
	}
	h, err := server.New(schemas, e.cfg.Options(), log)
	if err != nil {
		log.Error("cannot build server", logger.Error(err))
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info("serving schemas", slog.Any("schemas", ov.SchemaNames(schemas)))
	if err := server.Run(ctx, addr, h, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		return exitInvalid
	}
	return exitOK
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
