package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/observability"
	"github.com/matzehuels/rpgmap/pkg/observability/prom"
	"github.com/matzehuels/rpgmap/pkg/pipeline"
	"github.com/matzehuels/rpgmap/pkg/server"
)

type serveOpts struct {
	addr    string
	title   string
	noCache bool
}

// serveCommand creates the serve command, which hosts the interactive page.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve the interactive map over HTTP",
		Long: `Serve builds the map once and hosts it: the page at /, its data at
/graph.json, the records at /rpg_systems.json, plus /healthz and /metrics.
The server stops gracefully on interrupt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := c.datasetSource(args)
			if err != nil {
				return err
			}
			if opts.addr == "" {
				opts.addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), source, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, source string, opts serveOpts) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := prom.New(reg)
	metrics.Register()
	defer observability.Reset()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:  source,
		Formats: []string{pipeline.FormatHTML},
		Title:   opts.title,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(result.Records, result.Graph, server.Options{
		Title:    opts.title,
		HTML:     result.Artifacts[pipeline.FormatHTML],
		Metrics:  metrics,
		Gatherer: reg,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Serving %s", source)
	printStats(result.Stats.Systems, result.Stats.Tags, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	printKeyValue("Address", opts.addr)
	printNextStep("Open", "http://"+browseAddr(opts.addr))

	return srv.Run(ctx, opts.addr)
}

// browseAddr turns a listen address such as ":8080" into one a browser can
// open.
func browseAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
