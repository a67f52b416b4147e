package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/server"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr       string
	redisURL   string
	mongoURI   string
	mongoDB    string
	collection string
	chart      chartFlags
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve [data...]",
		Short: "Serve datasets and live charts over HTTP",
		Long: `Serve datasets and their live charts over HTTP.

Data files given as arguments are loaded into the store at startup. PUT a
new body to /datasets/{name} to run an animated update on its chart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.chart.config(cmd)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, opts, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.addr, "addr", opts.addr, "listen address")
	fs.StringVar(&opts.redisURL, "redis", "", "redis URL for the chart cache, e.g. redis://localhost:6379/0")
	fs.StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for dataset storage (default: in memory)")
	fs.StringVar(&opts.mongoDB, "mongo-db", dataset.DefaultMongoDatabase, "MongoDB database")
	fs.StringVar(&opts.collection, "mongo-collection", dataset.DefaultMongoCollection, "MongoDB collection")
	opts.chart.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg chart.Config, opts serveOpts, preload []string) error {
	logger := loggerFromContext(ctx)
	observability.NewLogHooks(logger).Register()

	var store dataset.Store = dataset.NewMemoryStore()
	if opts.mongoURI != "" {
		ms, err := dataset.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB, opts.collection)
		if err != nil {
			return err
		}
		store = ms
	}
	defer store.Close(context.Background())

	srvOpts := []server.Option{server.WithConfig(cfg), server.WithLogger(logger)}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return err
		}
		defer rc.Close()
		srvOpts = append(srvOpts, server.WithCache(rc, cache.NewScopedKeyer(nil, appName+":")))
	}

	for _, path := range preload {
		ds, err := dataset.Load(path)
		if err != nil {
			return err
		}
		ds.Sort()
		if err := store.Put(ctx, ds); err != nil {
			return err
		}
		printInfo("Loaded %s (%d points)", StyleHighlight.Render(ds.Name), len(ds.Points))
	}

	srv, err := server.New(store, srvOpts...)
	if err != nil {
		return err
	}
	printKeyValue("Listening", opts.addr)
	printKeyValue("Storage", storageName(opts))
	return srv.ListenAndServe(ctx, opts.addr)
}

func storageName(opts serveOpts) string {
	if opts.mongoURI != "" {
		return "mongodb " + opts.mongoDB + "." + opts.collection
	}
	return "memory"
}
