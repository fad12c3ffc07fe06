// Command rocketscripts inspects predictor scripts: it lists and fetches
// scripts from the script server and evaluates any predictor source on a
// feature vector.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"rocketsim/game"
	"rocketsim/logging"
	"rocketsim/predictor"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  rocketscripts [flags] list")
	fmt.Fprintln(os.Stderr, "  rocketscripts [flags] fetch NAME [FILE]")
	fmt.Fprintln(os.Stderr, "  rocketscripts [flags] predict SOURCE F1,F2,...")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "SOURCE is builtin:classifier, builtin:aim, intercept, server:NAME or a .js file.")
	fmt.Fprintln(os.Stderr, "The server URL comes from -server-url, ROCKETSIM_SCRIPT_URL or the config file.")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	serverURL := flag.String("server-url", "", "script server URL")
	timeout := flag.Duration("timeout", 10*time.Second, "overall request timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	url := *serverURL
	if url == "" {
		url = os.Getenv("ROCKETSIM_SCRIPT_URL")
	}
	if url == "" {
		url = cfg.Predictor.ServerURL
	}

	logger := logging.New(cfg.Log, os.Stderr)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	src := predictor.Source{Config: cfg, Logger: logger.Logger}
	if url != "" {
		src.Client = predictor.NewClient(url, logger.Logger)
	}

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "list":
		err = list(ctx, src.Client)
	case "fetch":
		err = fetch(ctx, src.Client, args)
	case "predict":
		err = predict(ctx, src, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func list(ctx context.Context, c *predictor.Client) error {
	if c == nil {
		return fmt.Errorf("list: no script server URL")
	}
	scripts, err := c.ListScripts(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBYTES\tUPDATED\tDESCRIPTION")
	for _, s := range scripts {
		updated := s.CreatedAt
		if s.UpdatedAt != nil {
			updated = *s.UpdatedAt
		}
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Name, len(s.Code),
			time.UnixMilli(updated).Format(time.RFC3339), desc)
	}
	return w.Flush()
}

func fetch(ctx context.Context, c *predictor.Client, args []string) error {
	if c == nil {
		return fmt.Errorf("fetch: no script server URL")
	}
	if len(args) < 1 {
		return fmt.Errorf("fetch: missing script name")
	}
	code, err := c.FetchScript(ctx, args[0])
	if err != nil {
		return err
	}
	if len(args) < 2 {
		_, err = fmt.Print(code)
		return err
	}
	return os.WriteFile(args[1], []byte(code), 0o644)
}

func predict(ctx context.Context, src predictor.Source, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("predict: want SOURCE and a feature list")
	}
	features, err := parseFeatures(args[1])
	if err != nil {
		return err
	}
	p, err := src.Open(ctx, args[0], "classifier")
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("predict: source %q yields no predictor", args[0])
	}
	fmt.Println(strconv.FormatFloat(p.Predict(features), 'g', -1, 64))
	return nil
}

// parseFeatures reads a comma separated list of numbers
func parseFeatures(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
