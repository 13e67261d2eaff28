package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"nyaya-backend/aiclient"
	"nyaya-backend/config"
	"nyaya-backend/handlers"
	"nyaya-backend/logger"
	"nyaya-backend/models"
	"nyaya-backend/repository"
	"nyaya-backend/search"
	"nyaya-backend/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lawsearch",
		Usage: "Search and browse the statute database from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "Postgres connection string (overrides DATABASE_URL)",
			},
			&cli.StringFlag{
				Name:  "ai-service-url",
				Usage: "Semantic search service base URL (overrides AI_SERVICE_URL)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Run a ranked statute search, falling back to semantic search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text query"},
					&cli.StringFlag{Name: "act", Usage: "Act name filter (substring)"},
					&cli.StringFlag{Name: "section", Usage: "Section filter, e.g. 302 or Section 302"},
					&cli.StringFlag{Name: "domain", Usage: "Domain filter, e.g. Criminal"},
					&cli.StringFlag{Name: "jurisdiction", Usage: "Jurisdiction filter, e.g. central"},
					&cli.BoolFlag{Name: "json", Usage: "Print the HTTP response body instead of a table"},
				},
			},
			{
				Name:   "acts",
				Usage:  "List the distinct act names",
				Action: actsCommand,
			},
			{
				Name:      "show",
				Usage:     "Print one section by id",
				ArgsUsage: "<id>",
				Action:    showCommand,
			},
		},
	}
}

// setup resolves configuration and logging before any command runs
func setup(c *cli.Context) error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	if c.IsSet("ai-service-url") {
		cfg.AIServiceURL = c.String("ai-service-url")
	}
	cfg.LogLevel = strings.ToLower(c.String("log-level"))
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: "console", Writer: c.App.ErrWriter})

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// openService connects to Postgres and builds the search service. The
// returned close func releases the pool.
func openService(c *cli.Context) (*service.LawService, func(), error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, nil, errors.New("configuration not loaded")
	}

	pool, err := pgxpool.New(c.Context, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(c.Context); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	svc := service.NewLawService(
		service.WithSectionStore(repository.NewLegalSectionRepository(pool)),
		service.WithSemanticSearcher(aiclient.NewClient(cfg.AIServiceURL, aiclient.WithTimeout(cfg.AISearchTimeout))),
	)
	return svc, pool.Close, nil
}

func searchCommand(c *cli.Context) error {
	svc, closeFn, err := openService(c)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Search(c.Context, search.Filters{
		Query:        c.String("query"),
		Act:          c.String("act"),
		Section:      c.String("section"),
		Domain:       c.String("domain"),
		Jurisdiction: c.String("jurisdiction"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return printSearch(c.App.Writer, result, c.Bool("json"))
}

func actsCommand(c *cli.Context) error {
	svc, closeFn, err := openService(c)
	if err != nil {
		return err
	}
	defer closeFn()

	acts, err := svc.ListActs(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list acts: %w", err)
	}
	for _, act := range acts {
		fmt.Fprintln(c.App.Writer, act)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return errors.New("section id is required")
	}

	svc, closeFn, err := openService(c)
	if err != nil {
		return err
	}
	defer closeFn()

	section, err := svc.GetSection(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to fetch section %s: %w", id, err)
	}
	printSection(c.App.Writer, section)
	return nil
}

// printSearch writes a search result either as the /laws/search response body
// or as a table of ranked rows with their scores
func printSearch(w io.Writer, result *service.SearchResult, asJSON bool) error {
	if asJSON {
		resp := handlers.SearchResponse{Count: result.Count(), Source: result.Source}
		if result.Source == service.SourceSemantic {
			resp.Results = result.SemanticHits
		} else {
			resp.Results = result.Sections()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "source: %s\tcount: %d\n", result.Source, result.Count())
	if result.Source == service.SourceSemantic {
		fmt.Fprintln(tw, "ACT\tSECTION\tTEXT")
		for _, hit := range result.SemanticHits {
			text := hit.TextEnglish
			if text == "" {
				text = hit.Text
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", hit.Act, hit.Section, excerpt(text))
		}
		return tw.Flush()
	}

	fmt.Fprintln(tw, "SCORE\tID\tACT\tSECTION\tTEXT")
	for _, r := range result.Ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Score, r.Section.ID, r.Section.Act, r.Section.Section, excerpt(r.Section.Text))
	}
	return tw.Flush()
}

func printSection(w io.Writer, s *models.LegalSection) {
	fmt.Fprintf(w, "%s, %s (%s)\n", s.Act, s.Section, s.ID)
	if s.Domain != nil {
		fmt.Fprintf(w, "domain: %s\n", *s.Domain)
	}
	if s.Jurisdiction != nil {
		fmt.Fprintf(w, "jurisdiction: %s\n", *s.Jurisdiction)
	}
	if s.SourceLink != nil {
		fmt.Fprintf(w, "source: %s\n", *s.SourceLink)
	}
	fmt.Fprintf(w, "\n%s\n", s.Text)
}

func excerpt(text string) string {
	const maxRunes = 80
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= maxRunes {
		return text
	}
	return string(r[:maxRunes-3]) + "..."
}
